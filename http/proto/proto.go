// Package proto recognises the "HTTP/major.minor" token shared by request
// and response lines.
package proto

import "github.com/indigo-web/utils/uf"

const (
	tokenLength = len("HTTP/x.x")
	majorOffset = len("HTTP/x") - 1
	minorOffset = len("HTTP/x.x") - 1
	scheme      = "HTTP/"
)

// FromBytes parses a fixed-width "HTTP/D.D" token and returns its major
// and minor version digits. Any single digit is accepted in either
// position (so "HTTP/2.0" parses); ok is false for anything else,
// including multi-digit versions.
func FromBytes(raw []byte) (major, minor uint8, ok bool) {
	if len(raw) != tokenLength || uf.B2S(raw[:majorOffset]) != scheme {
		return 0, 0, false
	}

	if raw[majorOffset] < '0' || raw[majorOffset] > '9' || raw[minorOffset] < '0' || raw[minorOffset] > '9' {
		return 0, 0, false
	}
	if raw[majorOffset+1] != '.' {
		return 0, 0, false
	}

	return raw[majorOffset] - '0', raw[minorOffset] - '0', true
}

// Package settings holds the parser's tunables as generic
// Setting[T]{Default, Maximal} pairs: Default sizes a buffer's initial
// capacity, Maximal is the hard cap that turns into a fatal error once
// crossed.
package settings

import "math"

type number interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64
}

type Setting[T number] struct {
	Default T
	Maximal T
}

type (
	// HeaderBytes bounds the cumulative number of bytes the parser will
	// consume across all header/trailer states before giving up with
	// HPE_HEADER_OVERFLOW. Maximal is the hard cap (80 KiB by default)
	// and also bounds the line accumulator; the parser does not read
	// Default (the accumulator's initial capacity comes from StartLine).
	HeaderBytes Setting[uint32]

	// HeadersCount bounds how many header (or trailer) lines a single
	// message may carry.
	HeadersCount Setting[uint16]

	// StartLine sizes the buffer backing a request/response line that
	// spans multiple execute() calls.
	StartLine Setting[uint16]
)

type Headers struct {
	Bytes HeaderBytes
	Count HeadersCount
}

type Config struct {
	Headers   Headers
	StartLine StartLine
}

// Default gives a sane out-of-the-box profile: an 80 KiB header cap,
// plenty of headroom for header count, and a modest start-line buffer.
func Default() Config {
	return Config{
		Headers: Headers{
			Bytes: HeaderBytes{
				Default: 2048,
				Maximal: 80 * 1024,
			},
			Count: HeadersCount{
				Default: 32,
				Maximal: math.MaxUint16,
			},
		},
		StartLine: StartLine{
			Default: 256,
			Maximal: math.MaxUint16,
		},
	}
}

// Fill backfills zero fields of original with Default()'s values,
// leaving any explicitly-set field untouched.
func Fill(original Config) (modified Config) {
	def := Default()

	original.Headers.Bytes.Default = customOrDefault(original.Headers.Bytes.Default, def.Headers.Bytes.Default)
	original.Headers.Bytes.Maximal = customOrDefault(original.Headers.Bytes.Maximal, def.Headers.Bytes.Maximal)
	original.Headers.Count.Default = customOrDefault(original.Headers.Count.Default, def.Headers.Count.Default)
	original.Headers.Count.Maximal = customOrDefault(original.Headers.Count.Maximal, def.Headers.Count.Maximal)
	original.StartLine.Default = customOrDefault(original.StartLine.Default, def.StartLine.Default)
	original.StartLine.Maximal = customOrDefault(original.StartLine.Maximal, def.StartLine.Maximal)

	return original
}

func customOrDefault[T number](custom, defaultVal T) T {
	if custom == 0 {
		return defaultVal
	}

	return custom
}

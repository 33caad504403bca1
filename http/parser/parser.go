// Package parser defines the host-facing surface of the HTTP/1.x
// incremental parser: the modes, callback contract and per-message
// metadata every concrete implementation (see the http1 subpackage)
// exposes. It carries no parsing logic of its own, keeping the
// interface separate from whichever wire format implements it.
package parser

import (
	"github.com/nebkat/httpstream/http/headers"
	"github.com/nebkat/httpstream/http/method"
)

// Mode fixes whether a Parser reads requests or responses. It is set at
// construction time and never changes for the lifetime of the parser.
type Mode uint8

const (
	Request Mode = iota + 1
	Response
)

func (m Mode) String() string {
	switch m {
	case Request:
		return "request"
	case Response:
		return "response"
	default:
		return "unknown"
	}
}

// Directive is the value a Callbacks.OnHeadersComplete implementation
// returns to steer body parsing.
type Directive int

const (
	// ContinueBody parses the body normally, according to framing.
	ContinueBody Directive = 0
	// SkipBody skips the body and starts the next message; if the
	// message signalled an upgrade, Execute additionally reports stop=true.
	SkipBody Directive = 1
	// SkipBodyNoData behaves like SkipBody but never triggers the
	// upgrade stop signal (used for HEAD-like responses to requests
	// that can never themselves upgrade the connection).
	SkipBodyNoData Directive = 2
)

// Info is the message descriptor handed to OnHeadersComplete once a
// request or response line and its headers have been fully parsed.
type Info struct {
	// VersionMajor/VersionMinor are the raw digits from "HTTP/major.minor".
	VersionMajor, VersionMinor uint8

	// MethodIndex and URL are populated for Request mode only.
	MethodIndex method.Index
	URL         string

	// StatusCode/StatusReason are populated for Response mode only.
	StatusCode   int
	StatusReason string

	// Headers preserves wire order; it is owned by the parser and its
	// contents are only valid until the message completes (the list is
	// reset right after on_message_complete, possibly within the same
	// Execute call).
	Headers *headers.List

	Upgrade         bool
	ShouldKeepAlive bool
}

// Callbacks is the fixed set of five callbacks a host implements to
// receive parse events, mirroring the numbered callback slots a
// classic http-parser-shaped ABI exposes; Go dispatches on the
// interface itself rather than on the numbers.
type Callbacks interface {
	// OnHeaders delivers trailers once a chunked message's trailer
	// section is complete. url is always empty; it exists to keep the
	// callback's shape symmetric with a headers-plus-target notion some
	// hosts expect.
	OnHeaders(flatHeaders []string, url string) error

	// OnHeadersComplete delivers the assembled message metadata and
	// receives back a Directive steering how (or whether) the body is
	// parsed.
	OnHeadersComplete(info *Info) (Directive, error)

	// OnBody delivers a non-owning view into the buffer passed to the
	// current Execute call. The callee must copy the bytes if it needs
	// to retain them past the call.
	OnBody(buf []byte, start, length int) error

	OnMessageComplete() error

	// OnExecute is reserved for host-ABI parity; the core never invokes it.
	OnExecute() error
}

// StreamParser is the operation surface a host drives: repeated Execute
// calls feeding bytes in, one Finish call signalling end-of-stream, and
// the fixed set of ABI methods kept only for parity with embeddings that
// expect a classic http-parser-shaped object (the pause/resume/close/
// free/consume/unconsume no-ops, plus getCurrentBuffer, which returns
// the unconsumed part of the last Execute window). This module never calls them
// itself and a standalone embedding is free to ignore them entirely.
type StreamParser interface {
	Init(mode Mode)
	Execute(chunk []byte) (consumed int, stop bool, err error)
	Finish() error

	Pause()
	Resume()
	Close() error
	Free()
	Consume()
	Unconsume()
	GetCurrentBuffer() []byte
}

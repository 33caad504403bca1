// Package http1 is the concrete HTTP/1.x implementation of the
// incremental parser: a resumable state machine built around an
// explicit dispatch loop over a small set of states, rather than the
// goto-driven control flow a hand-written C parser would use.
package http1

import (
	"strings"

	"github.com/indigo-web/utils/buffer"
	"github.com/nebkat/httpstream/http/headers"
	"github.com/nebkat/httpstream/http/parser"
	"github.com/nebkat/httpstream/http/perror"
	"github.com/nebkat/httpstream/settings"
)

var _ parser.StreamParser = (*Parser)(nil)

// action is what a state handler tells Execute's loop to do next.
type action uint8

const (
	actionContinue action = iota
	actionNeedMore
	actionStop
)

// Parser is a single-threaded, non-suspending HTTP/1.x message parser.
// It borrows its input buffer for the duration of one Execute call and
// must not be used from more than one goroutine at a time.
type Parser struct {
	mode parser.Mode
	cfg  settings.Config
	cb   parser.Callbacks

	state state

	chunk  []byte
	offset int
	length int

	lineCarry   *buffer.Buffer[byte]
	headerBytes uint32

	info     parser.Info
	headers  *headers.List
	trailers *headers.List

	connectionTokens strings.Builder
	sawUpgradeHeader bool
	sawContentLength bool
	contentLength    int

	isChunked          bool
	bodyRemainingKnown bool
	bodyRemaining      int

	hadError bool
	err      error
}

// New constructs a Parser fixed to mode, ready for Execute after a call
// to Init (or immediately, since New already leaves it initialised).
func New(mode parser.Mode, cfg settings.Config, cb parser.Callbacks) *Parser {
	cfg = settings.Fill(cfg)

	lineCarryDefault := uint32(cfg.StartLine.Default)
	if lineCarryDefault > cfg.Headers.Bytes.Maximal {
		lineCarryDefault = cfg.Headers.Bytes.Maximal
	}

	p := &Parser{
		mode: mode,
		cfg:  cfg,
		cb:   cb,
		lineCarry: buffer.NewBuffer[byte](
			lineCarryDefault, cfg.Headers.Bytes.Maximal,
		),
		headers:  headers.NewPrealloc(int(cfg.Headers.Count.Default)),
		trailers: headers.NewPrealloc(4),
	}
	p.Init(mode)

	return p
}

// Init re-initialises the parser for mode, discarding any in-progress
// message. It's what makes a Parser reusable across connections rather
// than allocating a fresh one per connection.
func (p *Parser) Init(mode parser.Mode) {
	p.mode = mode
	p.resetMessage()
	p.lineCarry.Clear()
	p.hadError = false
	p.err = nil

	if mode == parser.Request {
		p.state = stateRequestLine
	} else {
		p.state = stateResponseLine
	}
}

// Execute drains chunk through the state machine, invoking callbacks as
// successive parts of the message are recognised. It returns the
// number of bytes consumed from chunk and stop=true when the caller
// should stop feeding bytes to this parser and hand the remainder of
// chunk to an upgraded protocol instead.
func (p *Parser) Execute(chunk []byte) (consumed int, stop bool, err error) {
	if p.hadError {
		return 0, false, p.err
	}

	p.chunk = chunk
	p.offset = 0
	p.length = len(chunk)

	for p.offset < p.length {
		beforeState := p.state
		beforeOffset := p.offset

		var act action
		act, err = p.dispatch()
		if err != nil {
			p.hadError = true
			p.err = err
			return p.offset, false, err
		}

		// header_bytes accumulates per dispatch, scoped to whichever
		// state was active when that dispatch started: a handler that
		// itself resets header_bytes on a message boundary (completing
		// headers, or moving past trailers) has already made its own
		// call correct by the time we'd otherwise double-count it here.
		if beforeState.isHeaderState() {
			p.headerBytes += uint32(p.offset - beforeOffset)

			if p.headerBytes > p.cfg.Headers.Bytes.Maximal {
				p.hadError = true
				p.err = perror.ErrHeaderOverflow
				return p.offset, false, p.err
			}
		}

		switch act {
		case actionNeedMore:
			return p.offset, false, nil
		case actionStop:
			return p.offset, true, nil
		}
	}

	return p.offset, false, nil
}

// Finish signals end-of-stream. Only BodyRaw is a valid place to end a
// stream without an explicit framing signal; everything else means the
// peer closed mid-message.
func (p *Parser) Finish() error {
	if p.hadError {
		return nil
	}

	switch p.state {
	case stateRequestLine, stateResponseLine:
		return nil
	case stateBodyRaw:
		return p.cb.OnMessageComplete()
	default:
		p.hadError = true
		p.err = perror.ErrInvalidEOFState
		return p.err
	}
}

func (p *Parser) dispatch() (action, error) {
	switch p.state {
	case stateRequestLine:
		return p.handleRequestLine()
	case stateResponseLine:
		return p.handleResponseLine()
	case stateHeader:
		return p.handleHeader()
	case stateBodyChunkHead:
		return p.handleBodyChunkHead()
	case stateBodyChunk:
		return p.handleBodyChunk()
	case stateBodyChunkEnd:
		return p.handleBodyChunkEnd()
	case stateBodyChunkTrailers:
		return p.handleBodyChunkTrailers()
	case stateBodySized:
		return p.handleBodySized()
	case stateBodyRaw:
		return p.handleBodyRaw()
	default:
		panic("httpstream: unreachable parser state")
	}
}

// resetMessage clears every per-message field. It deliberately leaves
// lineCarry untouched: it is already empty at any message boundary,
// since lines are only ever consumed whole.
func (p *Parser) resetMessage() {
	p.info = parser.Info{}
	p.headers.Reset()
	p.trailers.Reset()
	p.connectionTokens.Reset()
	p.sawUpgradeHeader = false
	p.sawContentLength = false
	p.contentLength = 0
	p.isChunked = false
	p.bodyRemainingKnown = false
	p.bodyRemaining = 0
	p.headerBytes = 0
}

// nextMessage emits on_message_complete and rewinds to the start state
// for the parser's mode, ready for a pipelined successor message.
func (p *Parser) nextMessage() error {
	if err := p.cb.OnMessageComplete(); err != nil {
		return err
	}

	p.resetMessage()

	if p.mode == parser.Request {
		p.state = stateRequestLine
	} else {
		p.state = stateResponseLine
	}

	return nil
}

// connectionHas reports whether token was seen among the accumulated,
// already-lowercased Connection header values.
func (p *Parser) connectionHas(token string) bool {
	return strings.Contains(p.connectionTokens.String(), token)
}

package http1

import (
	"bytes"

	"github.com/nebkat/httpstream/http/headers"
	"github.com/nebkat/httpstream/http/perror"
)

// handleHeader reads one line at a time for as long as it keeps seeing
// header fields, then runs the framing resolver and invokes
// on_headers_complete once it sees the blank line terminating the
// section.
func (p *Parser) handleHeader() (action, error) {
	line, ok, err := p.consumeLine()
	if err != nil {
		return actionContinue, err
	}
	if !ok {
		return actionNeedMore, nil
	}

	if len(line) == 0 {
		return p.completeHeaders()
	}

	if err := p.parseHeaderLine(line, p.headers); err != nil {
		return actionContinue, err
	}

	if p.headers.Len() > int(p.cfg.Headers.Count.Maximal) {
		return actionContinue, perror.ErrHeaderOverflow
	}

	return actionContinue, nil
}

// parseHeaderLine classifies one header-section line: a new field
// "NAME:OWS VALUE OWS", a continuation line starting with space or tab,
// or a malformed line that is silently dropped.
func (p *Parser) parseHeaderLine(line []byte, into *headers.List) error {
	if bytes.IndexByte(line, '\r') != -1 {
		return perror.ErrLFExpected
	}

	if line[0] == ' ' || line[0] == '\t' {
		into.ExtendLast(string(trimOWS(line)))
		return nil
	}

	colon := bytes.IndexByte(line, ':')
	if colon == -1 {
		// Malformed-but-tolerated: no colon and no leading whitespace.
		return nil
	}

	name := line[:colon]
	if bytes.IndexByte(name, ' ') != -1 || bytes.IndexByte(name, '\t') != -1 {
		return nil
	}

	value := trimOWS(line[colon+1:])

	into.Add(string(name), string(value))

	return nil
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}

// completeHeaders runs the framing resolver, invokes the host callback
// and transitions into whichever body state (or next message) the
// directive and resolved framing together imply.
func (p *Parser) completeHeaders() (action, error) {
	if err := p.resolveFraming(); err != nil {
		return actionContinue, err
	}

	p.info.Headers = p.headers
	p.info.ShouldKeepAlive = p.shouldKeepAlive()

	directive, err := p.cb.OnHeadersComplete(&p.info)
	if err != nil {
		return actionContinue, err
	}

	return p.transitionAfterHeaders(directive)
}

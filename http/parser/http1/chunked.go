package http1

import "github.com/nebkat/httpstream/http/perror"

// handleBodyChunkHead reads one line and interprets it as a chunk-size
// token. Only a prefix of leading hex digits is significant: anything
// from the first non-hex byte onward (";ext=..." chunk extensions, most
// commonly) is accepted and ignored.
func (p *Parser) handleBodyChunkHead() (action, error) {
	line, ok, err := p.consumeLine()
	if err != nil {
		return actionContinue, err
	}
	if !ok {
		return actionNeedMore, nil
	}

	size, consumed := parseHexPrefix(line)
	if consumed == 0 {
		return actionContinue, perror.ErrInvalidChunkSize
	}

	if size == 0 {
		p.state = stateBodyChunkTrailers
		return actionContinue, nil
	}

	p.bodyRemainingKnown = true
	p.bodyRemaining = size
	p.state = stateBodyChunk

	return actionContinue, nil
}

// parseHexPrefix parses the longest leading run of hex digits in line,
// returning the parsed value and how many digits contributed to it.
// consumed == 0 means line did not start with a hex digit at all.
func parseHexPrefix(line []byte) (value, consumed int) {
	for _, c := range line {
		d := hexDigit(c)
		if d == -1 {
			break
		}

		value = value<<4 | d
		consumed++
	}

	return value, consumed
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// handleBodyChunk delivers up to body_remaining bytes of chunk data
// from the current window, never copying.
func (p *Parser) handleBodyChunk() (action, error) {
	n := p.length - p.offset
	if n > p.bodyRemaining {
		n = p.bodyRemaining
	}

	if n > 0 {
		if err := p.cb.OnBody(p.chunk, p.offset, n); err != nil {
			return actionContinue, err
		}

		p.offset += n
		p.bodyRemaining -= n
	}

	if p.bodyRemaining == 0 {
		p.state = stateBodyChunkEnd
	}

	return actionContinue, nil
}

// handleBodyChunkEnd reads the CRLF terminating a chunk's data; it must
// be empty.
func (p *Parser) handleBodyChunkEnd() (action, error) {
	line, ok, err := p.consumeLine()
	if err != nil {
		return actionContinue, err
	}
	if !ok {
		return actionNeedMore, nil
	}

	if len(line) != 0 {
		return actionContinue, perror.ErrStrict
	}

	p.state = stateBodyChunkHead

	return actionContinue, nil
}

// handleBodyChunkTrailers reads trailer header lines following the
// zero-sized final chunk, the same grammar as regular headers.
func (p *Parser) handleBodyChunkTrailers() (action, error) {
	line, ok, err := p.consumeLine()
	if err != nil {
		return actionContinue, err
	}
	if !ok {
		return actionNeedMore, nil
	}

	if len(line) != 0 {
		if err := p.parseHeaderLine(line, p.trailers); err != nil {
			return actionContinue, err
		}

		if p.trailers.Len() > int(p.cfg.Headers.Count.Maximal) {
			return actionContinue, perror.ErrHeaderOverflow
		}

		return actionContinue, nil
	}

	if p.trailers.Len() > 0 {
		if err := p.cb.OnHeaders(p.trailers.Flat(), ""); err != nil {
			return actionContinue, err
		}
	}

	upgrade := p.info.Upgrade

	if err := p.nextMessage(); err != nil {
		return actionContinue, err
	}

	if upgrade {
		return actionStop, nil
	}

	return actionContinue, nil
}

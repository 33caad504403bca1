package http1

import (
	"bytes"

	"github.com/nebkat/httpstream/http/perror"
)

// consumeLine implements the chunk reader's one exposed operation: it
// scans the current window for a line terminator, transparently
// stitching together bytes carried over from previous Execute calls.
//
// On success it returns the line with its terminator stripped and ok
// true; the returned slice aliases the line buffer and is only valid
// until the next consumeLine call. On a partial line it appends the
// remaining window to the carry buffer, advances the cursor to the end
// of the window, and returns ok false with a nil error: the caller is
// expected to propagate "need more input" up to Execute's caller.
func (p *Parser) consumeLine() (line []byte, ok bool, err error) {
	window := p.chunk[p.offset:p.length]

	lf := bytes.IndexByte(window, '\n')
	if lf == -1 {
		if !p.lineCarry.Append(window...) {
			return nil, false, perror.ErrHeaderOverflow
		}

		p.offset = p.length
		return nil, false, nil
	}

	if !p.lineCarry.Append(window[:lf]...) {
		return nil, false, perror.ErrHeaderOverflow
	}

	p.offset += lf + 1

	line = p.lineCarry.Finish()
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, true, nil
}

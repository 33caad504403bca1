package http1

import (
	"bytes"

	"github.com/nebkat/httpstream/http/method"
	"github.com/nebkat/httpstream/http/perror"
	"github.com/nebkat/httpstream/http/proto"
)

// handleRequestLine reads one line and matches it against
// "METHOD SP TARGET SP HTTP/D.D". A blank line is tolerated and simply
// re-enters the same state, so a client's trailing CRLF from a previous
// message doesn't need special-casing by the caller.
func (p *Parser) handleRequestLine() (action, error) {
	line, ok, err := p.consumeLine()
	if err != nil {
		return actionContinue, err
	}
	if !ok {
		return actionNeedMore, nil
	}

	if len(line) == 0 {
		return actionContinue, nil
	}

	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return actionContinue, perror.ErrInvalidConstant
	}

	methodToken := line[:sp]
	rest := line[sp+1:]

	sp2 := bytes.LastIndexByte(rest, ' ')
	if sp2 == -1 {
		return actionContinue, perror.ErrInvalidConstant
	}

	target, protoToken := rest[:sp2], rest[sp2+1:]
	if len(target) == 0 {
		return actionContinue, perror.ErrInvalidConstant
	}

	major, minor, ok := proto.FromBytes(protoToken)
	if !ok {
		return actionContinue, perror.ErrInvalidConstant
	}

	idx := method.Parse(string(methodToken))
	if idx == method.Unknown {
		return actionContinue, perror.ErrInvalidMethod
	}

	p.info.MethodIndex = idx
	p.info.URL = string(target)
	p.info.VersionMajor, p.info.VersionMinor = major, minor
	p.bodyRemainingKnown = true
	p.bodyRemaining = 0

	p.state = stateHeader

	return actionContinue, nil
}

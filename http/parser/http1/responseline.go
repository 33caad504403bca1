package http1

import (
	"bytes"

	"github.com/nebkat/httpstream/http/perror"
	"github.com/nebkat/httpstream/http/proto"
)

// handleResponseLine reads one line and matches it against
// "HTTP/D.D SP STATUS [SP REASON]".
func (p *Parser) handleResponseLine() (action, error) {
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

	major, minor, ok := proto.FromBytes(line[:sp])
	if !ok {
		return actionContinue, perror.ErrInvalidConstant
	}

	rest := line[sp+1:]

	var code int
	var i int
	for i = 0; i < len(rest) && i < 3; i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return actionContinue, perror.ErrInvalidConstant
		}

		code = code*10 + int(rest[i]-'0')
	}

	if i != 3 {
		return actionContinue, perror.ErrInvalidConstant
	}

	reason := rest[i:]
	if len(reason) > 0 {
		if reason[0] != ' ' {
			return actionContinue, perror.ErrInvalidConstant
		}

		reason = reason[1:]
	}

	p.info.VersionMajor, p.info.VersionMinor = major, minor
	p.info.StatusCode = code
	p.info.StatusReason = string(reason)

	if code < 200 || code == 204 || code == 304 {
		p.bodyRemainingKnown = true
		p.bodyRemaining = 0
	}

	p.state = stateHeader

	return actionContinue, nil
}

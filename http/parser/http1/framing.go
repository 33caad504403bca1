package http1

import (
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/nebkat/httpstream/http/method"
	"github.com/nebkat/httpstream/http/parser"
	"github.com/nebkat/httpstream/http/perror"
)

// resolveFraming scans the fully assembled header list once,
// case-insensitively, and derives is_chunked, body_remaining and the
// upgrade/keep-alive flags from it.
func (p *Parser) resolveFraming() error {
	for _, pair := range p.headers.Pairs() {
		switch {
		case strcomp.EqualFold(pair.Name, "transfer-encoding"):
			p.isChunked = strcomp.EqualFold(strings.TrimSpace(pair.Value), "chunked")
		case strcomp.EqualFold(pair.Name, "content-length"):
			n, err := strconv.Atoi(strings.TrimSpace(pair.Value))
			if err != nil || n < 0 {
				return perror.ErrInvalidConstant
			}

			if p.sawContentLength && n != p.contentLength {
				return perror.ErrUnexpectedContentLength
			}

			p.sawContentLength = true
			p.contentLength = n
			p.bodyRemainingKnown = true
			p.bodyRemaining = n
		case strcomp.EqualFold(pair.Name, "connection"):
			if p.connectionTokens.Len() > 0 {
				p.connectionTokens.WriteByte(',')
			}
			p.connectionTokens.WriteString(strings.ToLower(pair.Value))
		case strcomp.EqualFold(pair.Name, "upgrade"):
			p.sawUpgradeHeader = true
		}
	}

	if p.isChunked && p.sawContentLength {
		p.isChunked = true
		p.bodyRemainingKnown = false
		p.bodyRemaining = 0
	}

	p.resolveUpgrade()

	if p.info.Upgrade && p.isChunked {
		p.isChunked = false
	}

	return nil
}

func (p *Parser) resolveUpgrade() {
	if p.sawUpgradeHeader && p.connectionHas("upgrade") {
		p.info.Upgrade = p.mode == parser.Request || p.info.StatusCode == 101
		return
	}

	p.info.Upgrade = p.mode == parser.Request && method.Name(p.info.MethodIndex) == method.Connect
}

// shouldKeepAlive decides persistence from the resolved framing and the
// Connection tokens, including the deliberately preserved
// major>0 && minor>0 quirk that files HTTP/1.0 under the "older
// protocol" branch.
func (p *Parser) shouldKeepAlive() bool {
	framingIsDeterminate := p.isChunked || p.bodyRemainingKnown
	if !framingIsDeterminate {
		return false
	}

	if p.info.VersionMajor > 0 && p.info.VersionMinor > 0 {
		return !p.connectionHas("close")
	}

	return p.connectionHas("keep-alive")
}

// transitionAfterHeaders takes the host's directive and the resolved
// framing and decides whether to parse a body, skip straight to the
// next message, or stop the loop for an upgrade.
func (p *Parser) transitionAfterHeaders(directive parser.Directive) (action, error) {
	if directive == parser.SkipBodyNoData {
		if err := p.nextMessage(); err != nil {
			return actionContinue, err
		}

		return actionContinue, nil
	}

	if directive == parser.SkipBody {
		upgrade := p.info.Upgrade

		if err := p.nextMessage(); err != nil {
			return actionContinue, err
		}

		if upgrade {
			return actionStop, nil
		}

		return actionContinue, nil
	}

	if p.isChunked {
		p.state = stateBodyChunkHead
		return actionContinue, nil
	}

	if p.bodyRemainingKnown && p.bodyRemaining == 0 {
		upgrade := p.info.Upgrade

		if err := p.nextMessage(); err != nil {
			return actionContinue, err
		}

		if upgrade {
			return actionStop, nil
		}

		return actionContinue, nil
	}

	if !p.bodyRemainingKnown {
		p.state = stateBodyRaw
		return actionContinue, nil
	}

	p.state = stateBodySized

	return actionContinue, nil
}

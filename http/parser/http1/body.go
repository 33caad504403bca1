package http1

// handleBodySized delivers Content-Length-framed body bytes until
// body_remaining reaches zero, then advances to the next message.
func (p *Parser) handleBodySized() (action, error) {
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

	if p.bodyRemaining != 0 {
		return actionContinue, nil
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

// handleBodyRaw delivers whatever is left of the current window as
// body bytes. It never transitions on its own: a close-delimited body
// only ends when the host calls Finish.
func (p *Parser) handleBodyRaw() (action, error) {
	n := p.length - p.offset
	if n > 0 {
		if err := p.cb.OnBody(p.chunk, p.offset, n); err != nil {
			return actionContinue, err
		}

		p.offset = p.length
	}

	return actionContinue, nil
}

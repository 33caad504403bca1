package http1

// The methods in this file exist only so Parser satisfies
// parser.StreamParser for hosts that expect a classic http-parser-shaped
// object. The core never calls any of them; a standalone embedding can
// ignore them entirely.

func (p *Parser) Pause() {}

func (p *Parser) Resume() {}

func (p *Parser) Close() error { return nil }

func (p *Parser) Free() {}

func (p *Parser) Consume() {}

func (p *Parser) Unconsume() {}

// GetCurrentBuffer returns the part of the buffer passed to the most
// recent Execute call that hasn't been consumed yet. After Execute
// returns it is empty if that call consumed everything, and holds the
// unconsumed tail if the call stopped early (an upgrade stop or an
// error); before the first Execute call it is empty.
func (p *Parser) GetCurrentBuffer() []byte {
	return p.chunk[p.offset:p.length]
}

package remote

// parser is the 4-byte preamble + fixed-payload state machine described in
// spec.md 6: bytes are fed one at a time; on any preamble mismatch the
// state silently resets to 0 (framing desync is never fatal, the next byte
// simply restarts the search). preamble selects which of the two mirrored
// layouts (inbound command vs outbound telemetry) this parser recognizes.
type parser struct {
	preamble [4]byte
	pos      int
	buf      [frameSize]byte
}

func newParser(preamble [4]byte) *parser {
	return &parser{preamble: preamble}
}

// feed consumes one byte, returning a decoded RemoteFrame and true once a
// full frame has been validated. The caller is expected to flush any
// remaining bytes in the underlying read buffer on a true return, matching
// the original's "flush on completion" behavior.
func (p *parser) feed(octet byte) (RemoteFrame, bool) {
	switch {
	case p.pos < 4:
		if octet == p.preamble[p.pos] {
			p.pos++
		} else {
			p.pos = 0
		}
		return RemoteFrame{}, false
	default:
		p.buf[p.pos-4] = octet
		p.pos++
		if p.pos-4 == frameSize {
			p.pos = 0
			var f RemoteFrame
			f.unmarshalBinary(p.buf[:])
			return f, true
		}
		return RemoteFrame{}, false
	}
}

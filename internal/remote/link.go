package remote

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Porter is the minimal interface a remote Link needs from a serial port:
// enough to read inbound command bytes and write outbound telemetry bytes,
// and to be closed during shutdown. Tests substitute MockPort for a real
// serial port through this interface.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// Link owns one serial connection to the remote controller: it decodes
// inbound RemoteFrames with the '$','S',' ',' ' preamble parser and encodes
// outbound telemetry frames with the '$','R',' ',' ' preamble, mirroring the
// just-received command frame's fields back to the controller.
type Link struct {
	port    Porter
	in      *parser
	scratch [64]byte
}

// Open configures and opens a real serial port at path for the remote link,
// matching the baud/framing the controller firmware expects.
func Open(path string, baud int) (*Link, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("remote: opening serial port %s: %w", path, err)
	}
	// A zero read timeout makes Read return (0, nil) once the input is
	// drained, which is what lets ReadFrame return within the tick.
	if err := port.SetReadTimeout(0); err != nil {
		port.Close()
		return nil, fmt.Errorf("remote: setting read timeout on %s: %w", path, err)
	}
	return NewLink(port), nil
}

// NewLink wraps an already-open Porter (a real serial.Port or a test
// double) in a Link.
func NewLink(port Porter) *Link {
	return &Link{
		port: port,
		in:   newParser(inboundPreamble),
	}
}

// ReadFrame drains whatever inbound bytes are immediately available and
// reports whether a new, validated RemoteFrame was assembled. The
// underlying port is expected to have a short (or zero) read timeout
// configured so this call returns promptly with n==0 rather than blocking,
// matching the original's non-blocking readModem polled once per tick.
func (l *Link) ReadFrame() (RemoteFrame, bool, error) {
	for {
		n, err := l.port.Read(l.scratch[:])
		if err != nil {
			return RemoteFrame{}, false, fmt.Errorf("remote: reading frame bytes: %w", err)
		}
		if n == 0 {
			return RemoteFrame{}, false, nil
		}
		for _, octet := range l.scratch[:n] {
			if frame, ok := l.in.feed(octet); ok {
				return frame, true, nil
			}
		}
	}
}

// WriteTelemetry mirrors f back to the controller as an outbound telemetry
// frame, preamble included. Called only when a new inbound frame was
// validated this tick, per spec.md 6.
func (l *Link) WriteTelemetry(f RemoteFrame) error {
	buf := make([]byte, 0, 4+frameSize)
	buf = append(buf, outboundPreamble[:]...)
	buf = append(buf, f.MarshalBinary()...)
	if _, err := l.port.Write(buf); err != nil {
		return fmt.Errorf("remote: writing telemetry frame: %w", err)
	}
	return nil
}

// Close closes the underlying serial port.
func (l *Link) Close() error {
	return l.port.Close()
}

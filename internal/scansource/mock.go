package scansource

import "io"

// MockPort is an in-memory Porter test double: reads come from Inbound,
// writes accumulate in Outbound. It models a serial port with a read
// timeout by returning (0, nil) once Inbound is drained, rather than
// blocking or erroring.
type MockPort struct {
	Inbound  []byte
	Outbound []byte
	readPos  int
	closed   bool
}

func (m *MockPort) Read(p []byte) (int, error) {
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if m.readPos >= len(m.Inbound) {
		return 0, nil
	}
	n := copy(p, m.Inbound[m.readPos:])
	m.readPos += n
	return n, nil
}

func (m *MockPort) Write(p []byte) (int, error) {
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	m.Outbound = append(m.Outbound, p...)
	return len(p), nil
}

func (m *MockPort) Close() error {
	m.closed = true
	return nil
}

package remote

import "io"

// MockPort is a test double implementing Porter over in-memory buffers, in
// the style of the teacher's MockSerialPort: Read drains a pre-loaded
// inbound byte queue (returning 0, nil when empty, never blocking), Write
// appends to an outbound log tests can inspect.
type MockPort struct {
	Inbound  []byte
	Outbound []byte
	readPos  int
	closed   bool
}

// Read copies as many buffered inbound bytes as fit into p, returning 0 and
// no error once the inbound queue is exhausted.
func (m *MockPort) Read(p []byte) (int, error) {
	if m.readPos >= len(m.Inbound) {
		return 0, nil
	}
	n := copy(p, m.Inbound[m.readPos:])
	m.readPos += n
	return n, nil
}

// Write appends p to the outbound log.
func (m *MockPort) Write(p []byte) (int, error) {
	m.Outbound = append(m.Outbound, p...)
	return len(p), nil
}

// Close marks the port closed. Reading or writing after Close still
// succeeds against the in-memory buffers; there is no hardware to fail.
func (m *MockPort) Close() error {
	m.closed = true
	return nil
}

var _ io.ReadWriteCloser = (*MockPort)(nil)

package scansource

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"go.bug.st/serial"

	"github.com/banshee-data/lineslam/internal/slam"
)

// Porter is the minimal serial port surface SerialSource needs.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// revolution wire format: a single sync byte (0xAA), a little-endian
// uint16 point count, then that many 6-byte points (int16 angle16 theta,
// int32 millimetre distance). It is a fixed, simple packet shape for the
// one-revolution, one-point-type case this core needs.
const (
	syncByte      = 0xAA
	pointWireSize = 6
)

// SerialSource reads whole-revolution records from a serial-attached
// LIDAR, resynchronizing on the sync byte whenever the stream is corrupted
// or a connection is freshly opened mid-revolution.
type SerialSource struct {
	port Porter
}

// Open configures and opens a real serial port at path for the LIDAR.
func Open(path string, baud int) (*SerialSource, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("scansource: opening serial port %s: %w", path, err)
	}
	return NewSerialSource(port), nil
}

// NewSerialSource wraps an already-open Porter (a real serial.Port or a
// test double).
func NewSerialSource(port Porter) *SerialSource {
	return &SerialSource{port: port}
}

// NextRevolution blocks (subject to ctx cancellation) until one full,
// synchronized revolution record has been read.
func (s *SerialSource) NextRevolution(ctx context.Context) ([]slam.PolarPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.syncToHeader(ctx); err != nil {
		return nil, err
	}

	countBuf := make([]byte, 2)
	if err := s.readFull(ctx, countBuf); err != nil {
		return nil, err
	}
	count := binary.LittleEndian.Uint16(countBuf)

	payload := make([]byte, int(count)*pointWireSize)
	if err := s.readFull(ctx, payload); err != nil {
		return nil, err
	}

	points := make([]slam.PolarPoint, count)
	for i := range points {
		off := i * pointWireSize
		points[i] = slam.PolarPoint{
			Theta:    slam.Angle16(int16(binary.LittleEndian.Uint16(payload[off:]))),
			Distance: int32(binary.LittleEndian.Uint32(payload[off+2:])),
		}
	}
	return points, nil
}

// syncToHeader discards bytes until it sees the sync byte.
func (s *SerialSource) syncToHeader(ctx context.Context) error {
	one := make([]byte, 1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.readFull(ctx, one); err != nil {
			return err
		}
		if one[0] == syncByte {
			return nil
		}
	}
}

// readFull reads len(buf) bytes, retrying short/zero reads (a serial port
// configured with a read timeout returns 0, nil rather than blocking
// forever) until ctx is cancelled.
func (s *SerialSource) readFull(ctx context.Context, buf []byte) error {
	got := 0
	for got < len(buf) {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := s.port.Read(buf[got:])
		if err != nil {
			return fmt.Errorf("scansource: reading revolution: %w", err)
		}
		got += n
	}
	return nil
}

// Close closes the underlying serial port.
func (s *SerialSource) Close() error {
	return s.port.Close()
}

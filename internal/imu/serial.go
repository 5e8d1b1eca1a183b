package imu

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"go.bug.st/serial"
)

// Porter is the minimal serial port surface SerialSensor needs.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// SerialSensor reads fixed-size little-endian float32 yaw samples (in
// radians) from a serial-attached IMU, one sample per ReadYaw call.
type SerialSensor struct {
	port    Porter
	scratch [4]byte
}

// OpenSerialSensor opens a serial port at path for an IMU streaming
// 4-byte float32 yaw samples.
func OpenSerialSensor(path string, baud int) (*SerialSensor, error) {
	port, err := serial.Open(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("imu: opening serial port %s: %w", path, err)
	}
	return &SerialSensor{port: port}, nil
}

// ReadYaw blocks until a full 4-byte sample has been read.
func (s *SerialSensor) ReadYaw(ctx context.Context) (float64, error) {
	got := 0
	for got < len(s.scratch) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := s.port.Read(s.scratch[got:])
		if err != nil {
			return 0, fmt.Errorf("imu: reading yaw sample: %w", err)
		}
		got += n
	}
	bits := binary.LittleEndian.Uint32(s.scratch[:])
	return float64(math.Float32frombits(bits)), nil
}

// Close closes the underlying serial port.
func (s *SerialSensor) Close() error {
	return s.port.Close()
}

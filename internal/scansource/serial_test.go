package scansource

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRevolution(points [][2]int32) []byte {
	buf := []byte{syncByte, 0, 0}
	binary.LittleEndian.PutUint16(buf[1:], uint16(len(points)))
	for _, p := range points {
		var pt [pointWireSize]byte
		binary.LittleEndian.PutUint16(pt[0:], uint16(int16(p[0])))
		binary.LittleEndian.PutUint32(pt[2:], uint32(p[1]))
		buf = append(buf, pt[:]...)
	}
	return buf
}

func TestSerialSourceReadsOneRevolution(t *testing.T) {
	wire := encodeRevolution([][2]int32{{0, 1000}, {16384, 2000}})
	port := &MockPort{Inbound: wire}
	src := NewSerialSource(port)

	got, err := src.NextRevolution(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int32(1000), got[0].Distance)
	assert.Equal(t, int32(2000), got[1].Distance)
}

func TestSerialSourceResyncsPastGarbage(t *testing.T) {
	wire := append([]byte{0x01, 0x02, 0x03}, encodeRevolution([][2]int32{{0, 500}})...)
	port := &MockPort{Inbound: wire}
	src := NewSerialSource(port)

	got, err := src.NextRevolution(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(500), got[0].Distance)
}

func TestSerialSourceReturnsContextErrorOnCancellation(t *testing.T) {
	port := &MockPort{Inbound: nil}
	src := NewSerialSource(port)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.NextRevolution(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteFrameRoundTrip(t *testing.T) {
	f := RemoteFrame{
		XY:       [NBCommands][2]int16{{1, -2}, {3, -4}, {5, -6}, {7, -8}},
		Z:        100,
		VX:       -50,
		VY:       25,
		VZ:       -1,
		Switches: SwitchOK | SwitchLess,
	}

	buf := f.MarshalBinary()
	require.Len(t, buf, frameSize)

	var got RemoteFrame
	got.unmarshalBinary(buf)
	assert.Equal(t, f, got)
}

func TestRemoteFrameMoving(t *testing.T) {
	assert.False(t, RemoteFrame{}.Moving())
	assert.True(t, RemoteFrame{VX: 1}.Moving())
	assert.True(t, RemoteFrame{VY: -1}.Moving())
	assert.True(t, RemoteFrame{VZ: 1}.Moving())
}

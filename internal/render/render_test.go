package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/lineslam/internal/slam"
)

func TestBlankRendererProducesCorrectlySizedFrame(t *testing.T) {
	r := BlankRenderer{Width: 4, Height: 2, Fill: [3]byte{10, 20, 30}}
	frame := r.RenderFrame(nil, nil, nil, slam.Pose{}, false)

	assert.Len(t, frame, 4*2*3)
	for i := 0; i < len(frame); i += 3 {
		assert.Equal(t, byte(10), frame[i])
		assert.Equal(t, byte(20), frame[i+1])
		assert.Equal(t, byte(30), frame[i+2])
	}
}

func TestBlankRendererIgnoresInputs(t *testing.T) {
	r := BlankRenderer{Width: 1, Height: 1}
	scan := []slam.Point{{X: 1, Y: 1}}
	lines := []slam.Segment{{A: slam.Point{X: 0, Y: 0}, B: slam.Point{X: 1, Y: 1}}}

	frame := r.RenderFrame(scan, lines, lines, slam.Pose{Position: slam.Point{X: 5, Y: 5}}, true)
	assert.Len(t, frame, 3)
}

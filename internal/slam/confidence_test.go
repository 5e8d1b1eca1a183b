package slam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceGateRequiresQuietCountdown(t *testing.T) {
	cfg := DefaultConfig()
	g := NewConfidenceGate(cfg)

	for i := int32(0); i < cfg.ConfidenceDelay-1; i++ {
		assert.False(t, g.Evaluate(0, 0, 0, Point{}, 0, cfg))
	}
	assert.True(t, g.Evaluate(0, 0, 0, Point{}, 0, cfg))
}

func TestConfidenceGateResetsOnMotion(t *testing.T) {
	cfg := DefaultConfig()
	g := &ConfidenceGate{delay: 0}

	assert.True(t, g.Evaluate(0, 0, 0, Point{}, 0, cfg))
	assert.False(t, g.Evaluate(1, 0, 0, Point{}, 0, cfg))
	assert.Equal(t, cfg.ConfidenceDelay-1, g.delay)
}

func TestConfidenceGateRejectsLargeResidual(t *testing.T) {
	cfg := DefaultConfig()
	g := &ConfidenceGate{delay: 0}

	big := Point{X: int32(cfg.SmallDistError) * 10}
	assert.False(t, g.Evaluate(0, 0, 0, big, 0, cfg))
}

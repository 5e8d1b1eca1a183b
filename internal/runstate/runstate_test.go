package runstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlagStartsRunning(t *testing.T) {
	f := New()
	assert.True(t, f.Running())
}

func TestFlagStopIsIdempotent(t *testing.T) {
	f := New()
	f.Stop()
	f.Stop()
	assert.False(t, f.Running())
}

func TestWatchContextStopsOnCancel(t *testing.T) {
	f := New()
	ctx, cancel := context.WithCancel(context.Background())
	f.WatchContext(ctx)

	cancel()
	assert.Eventually(t, func() bool { return !f.Running() }, time.Second, time.Millisecond)
}

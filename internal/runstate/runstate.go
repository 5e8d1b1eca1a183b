// Package runstate holds the process-wide state the main loop, the IMU
// poller, and the scan producer all observe: whether the process should
// keep running. Cancellation is cooperative: every loop checks Flag at
// the top of its own iteration rather than being interrupted mid-step.
package runstate

import (
	"context"
	"sync/atomic"
)

// Flag is the explicit, process-wide run singleton. The signal handler
// (via context cancellation) is the only writer; every loop is a reader.
type Flag struct {
	running atomic.Bool
}

// New returns a Flag starting in the running state.
func New() *Flag {
	f := &Flag{}
	f.running.Store(true)
	return f
}

// Running reports whether the process should continue its current
// iteration's work.
func (f *Flag) Running() bool {
	return f.running.Load()
}

// Stop flips the flag false. Idempotent.
func (f *Flag) Stop() {
	f.running.Store(false)
}

// WatchContext stops f as soon as ctx is done, bridging
// signal.NotifyContext's cancellation into the polled-flag model the
// rest of the core uses.
func (f *Flag) WatchContext(ctx context.Context) {
	go func() {
		<-ctx.Done()
		f.Stop()
	}()
}

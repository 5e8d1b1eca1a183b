// Package scansource provides the ScanSource external collaborator: it
// yields one complete LIDAR revolution of polar returns at a time, and the
// SLAM core only processes a tick once a complete revolution is available.
// SerialSource keeps no buffer of its own: it reads revolution records in
// the order they arrive on the wire, so a record that arrived while the
// caller was busy is returned before any newer one, not replaced by it.
package scansource

import (
	"context"

	"github.com/banshee-data/lineslam/internal/slam"
)

// Source yields one revolution of polar returns per NextRevolution call,
// blocking until a complete revolution is available or ctx is cancelled.
type Source interface {
	// NextRevolution blocks until one full revolution is ready, returning
	// it as a cyclic slice of polar points. Returns ctx.Err() on
	// cancellation.
	NextRevolution(ctx context.Context) ([]slam.PolarPoint, error)
	// Close releases any underlying hardware resources.
	Close() error
}

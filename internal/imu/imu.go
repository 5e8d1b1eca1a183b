// Package imu provides the optional absolute-yaw collaborator: a
// word-atomic shared reading updated by a poller goroutine at the sensor's
// native rate, read once per control tick by the main loop.
package imu

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/banshee-data/lineslam/internal/slam"
)

// YawSource reports the sensor's current absolute yaw, if one is available.
// The second return value is false when no IMU was detected, matching
// spec.md 7's "sensor absent" error kind: the caller falls back to deriving
// heading from commanded vz.
type YawSource interface {
	Yaw() (slam.Angle16, bool)
}

// NoIMU is a YawSource stub that always reports absence, used when no
// hardware was requested or none was found.
type NoIMU struct{}

// Yaw always returns (0, false).
func (NoIMU) Yaw() (slam.Angle16, bool) { return 0, false }

// Reader is a word-atomic YawSource fed by a poller goroutine. The zero
// value reports absent until the first successful poll.
type Reader struct {
	raw     atomic.Int32
	present atomic.Bool
}

// NewReader returns a Reader that reports absent until Poll populates it.
func NewReader() *Reader {
	return &Reader{}
}

// Yaw returns the most recently polled yaw reading and whether one has ever
// been recorded.
func (r *Reader) Yaw() (slam.Angle16, bool) {
	if !r.present.Load() {
		return 0, false
	}
	return slam.Angle16(int16(r.raw.Load())), true
}

// set records a new yaw reading; called only by the poller goroutine.
func (r *Reader) set(yaw slam.Angle16) {
	r.raw.Store(int32(yaw))
	r.present.Store(true)
}

// Sensor is the minimal hardware collaborator a Reader polls: one absolute
// yaw sample per call, in radians, matching the fusion-pose convention of
// the sensor libraries this core was built against.
type Sensor interface {
	// ReadYaw blocks for at most one sample interval and returns the
	// sensor's current fused yaw in radians, or an error if the read
	// failed (including "no data yet").
	ReadYaw(ctx context.Context) (float64, error)
}

// Poll runs until ctx is cancelled, reading sensor at the given interval
// and publishing successful samples to r. Read errors are logged once per
// occurrence and otherwise ignored; a transient sensor hiccup does not stop
// the poller, matching the core's "nothing is retried, nothing is fatal"
// error philosophy outside configuration errors.
func (r *Reader) Poll(ctx context.Context, sensor Sensor, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			yaw, err := sensor.ReadYaw(ctx)
			if err != nil {
				log.Printf("imu: read yaw: %v", err)
				continue
			}
			r.set(radiansToAngle16(yaw))
		}
	}
}

func radiansToAngle16(rad float64) slam.Angle16 {
	return slam.Angle16(int32(rad * float64(slam.PI16) / 3.141592653589793))
}

// ErrNoSensor describes the absence of IMU hardware. No function in this
// package returns it.
var ErrNoSensor = fmt.Errorf("imu: no sensor detected")

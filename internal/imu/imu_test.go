package imu

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/lineslam/internal/slam"
)

func TestNoIMUReportsAbsent(t *testing.T) {
	_, ok := NoIMU{}.Yaw()
	assert.False(t, ok)
}

func TestReaderReportsAbsentBeforeFirstPoll(t *testing.T) {
	r := NewReader()
	_, ok := r.Yaw()
	assert.False(t, ok)
}

type stubSensor struct {
	yaw float64
	err error
}

func (s stubSensor) ReadYaw(ctx context.Context) (float64, error) {
	return s.yaw, s.err
}

func TestReaderPollPublishesSamples(t *testing.T) {
	r := NewReader()
	sensor := stubSensor{yaw: math.Pi / 2}

	ctx, cancel := context.WithCancel(context.Background())
	go r.Poll(ctx, sensor, time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok := r.Yaw()
		return ok
	}, time.Second, time.Millisecond)

	yaw, ok := r.Yaw()
	assert.True(t, ok)
	assert.InDelta(t, int32(slam.PI16/2), int32(yaw), 2)
	cancel()
}

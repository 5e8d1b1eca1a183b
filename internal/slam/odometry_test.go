package slam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegrateOdometryNoIMUAdvancesFromVZ(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	e.IntegrateOdometry(1000, 0, 100, nil)
	assert.NotEqual(t, Angle16(0), e.Pose.Theta)
}

func TestIntegrateOdometryForwardMotionAtZeroHeading(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	e.IntegrateOdometry(1000, 0, 0, nil)
	assert.Equal(t, Angle16(0), e.Pose.Theta)
	assert.InDelta(t, 1000, e.Pose.Position.X, 2)
	assert.InDelta(t, 0, e.Pose.Position.Y, 2)
}

func TestIntegrateOdometryIMUDrivesHeading(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)

	yaw := Angle16(16384)
	e.IntegrateOdometry(0, 0, 0, &yaw)
	assert.Equal(t, yaw, e.Pose.Theta)
}

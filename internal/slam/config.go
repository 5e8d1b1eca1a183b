package slam

import "fmt"

// Config collects every tunable tolerance and divisor used by the SLAM
// engine. Constructed via DefaultConfig and optionally adjusted with the
// fluent With* builders before being validated with Validate.
type Config struct {
	// SmallAngularError is the tight angular tolerance (radians) gating
	// merges and the confidence residual check.
	SmallAngularError float64
	// LargeAngularError is the loose angular tolerance (radians) gating
	// whether an observation is considered matched to a map segment at all.
	LargeAngularError float64
	// SmallDistError is the tight perpendicular-distance tolerance (mm)
	// gating merges and the confidence residual check.
	SmallDistError float64
	// LargeDistError is the loose perpendicular-distance tolerance (mm)
	// gating whether an observation is considered matched.
	LargeDistError float64

	// OdometryCorrectorDiv divides the accumulated positional residual
	// before it is subtracted from the pose position each tick.
	OdometryCorrectorDiv int32
	// ThetaCorrectorDiv divides the accumulated angular residual before it
	// is added directly to Pose.theta, when no IMU supplies absolute yaw.
	ThetaCorrectorDiv int32
	// IMUThetaCorrectorDiv divides the accumulated angular residual before
	// it is folded into the running theta_corrector, when an IMU supplies
	// absolute yaw.
	IMUThetaCorrectorDiv int32

	// VZMul scales the commanded vz into a per-tick heading delta when no
	// IMU is present.
	VZMul int32
	// VXDiv and VYDiv scale the rotated commanded velocity into a per-tick
	// position delta.
	VXDiv int32
	VYDiv int32
	// DirZ is the sign/scale applied to the raw IMU yaw reading before it
	// becomes Pose.theta.
	DirZ int32

	// Epsilon is the Douglas-Peucker simplification tolerance (mm).
	Epsilon float64
	// DistClamp is the floor on the adaptive per-point gap threshold used
	// while walking the ring for run segmentation (mm).
	DistClamp int32
	// DistMargin scales the angle-subtended adaptive gap threshold.
	DistMargin float64
	// NBPointsMin is the minimum number of points a run must contain to be
	// emitted by extract_raw_lines.
	NBPointsMin int
	// DistMin is the minimum end-to-end span (mm) a run must have to be
	// emitted by extract_raw_lines.
	DistMin int32

	// LidarX and LidarY are the LIDAR sensor's mounting offset (mm) from the
	// robot origin, added to every converted scan point.
	LidarX, LidarY int32
	// FootprintXMin/Max and FootprintYMin/Max bound the robot's own
	// footprint rectangle (mm); scan points falling inside are dropped.
	FootprintXMin, FootprintXMax int32
	FootprintYMin, FootprintYMax int32

	// ConfidenceDelay is the number of quiet ticks the confidence gate
	// requires, after the last commanded motion, before it may report true.
	ConfidenceDelay int32
}

// DefaultConfig returns the tolerances and divisors inferred from the
// original fixed-point firmware core, expressed in this package's units
// (radians for angles, millimetres for distances).
func DefaultConfig() Config {
	return Config{
		SmallAngularError: 0.035, // ~2 degrees
		LargeAngularError: 0.26,  // ~15 degrees
		SmallDistError:    30,
		LargeDistError:    150,

		OdometryCorrectorDiv: 4,
		ThetaCorrectorDiv:    4,
		IMUThetaCorrectorDiv: 8,

		VZMul: 1,
		VXDiv: 1,
		VYDiv: 1,
		DirZ:  1,

		Epsilon:    20,
		DistClamp:  100,
		DistMargin: 3,

		NBPointsMin: 4,
		DistMin:     150,

		LidarX: 0,
		LidarY: 0,

		FootprintXMin: -200,
		FootprintXMax: 200,
		FootprintYMin: -250,
		FootprintYMax: 250,

		ConfidenceDelay: 20,
	}
}

// Validate reports a configuration error describing the first inconsistent
// field found, or nil if cfg is internally consistent.
func (cfg Config) Validate() error {
	if cfg.SmallAngularError <= 0 {
		return fmt.Errorf("slam: SmallAngularError must be positive, got %v", cfg.SmallAngularError)
	}
	if cfg.LargeAngularError <= cfg.SmallAngularError {
		return fmt.Errorf("slam: LargeAngularError (%v) must exceed SmallAngularError (%v)", cfg.LargeAngularError, cfg.SmallAngularError)
	}
	if cfg.SmallDistError <= 0 {
		return fmt.Errorf("slam: SmallDistError must be positive, got %v", cfg.SmallDistError)
	}
	if cfg.LargeDistError <= cfg.SmallDistError {
		return fmt.Errorf("slam: LargeDistError (%v) must exceed SmallDistError (%v)", cfg.LargeDistError, cfg.SmallDistError)
	}
	if cfg.OdometryCorrectorDiv <= 0 || cfg.ThetaCorrectorDiv <= 0 || cfg.IMUThetaCorrectorDiv <= 0 {
		return fmt.Errorf("slam: corrector divisors must be positive")
	}
	if cfg.VXDiv <= 0 || cfg.VYDiv <= 0 {
		return fmt.Errorf("slam: VXDiv/VYDiv must be positive")
	}
	if cfg.Epsilon <= 0 {
		return fmt.Errorf("slam: Epsilon must be positive, got %v", cfg.Epsilon)
	}
	if cfg.DistClamp <= 0 {
		return fmt.Errorf("slam: DistClamp must be positive, got %v", cfg.DistClamp)
	}
	if cfg.DistMargin <= 0 {
		return fmt.Errorf("slam: DistMargin must be positive, got %v", cfg.DistMargin)
	}
	if cfg.NBPointsMin < 2 {
		return fmt.Errorf("slam: NBPointsMin must be at least 2, got %d", cfg.NBPointsMin)
	}
	if cfg.DistMin <= 0 {
		return fmt.Errorf("slam: DistMin must be positive, got %v", cfg.DistMin)
	}
	if cfg.FootprintXMin >= cfg.FootprintXMax {
		return fmt.Errorf("slam: FootprintXMin must be < FootprintXMax")
	}
	if cfg.FootprintYMin >= cfg.FootprintYMax {
		return fmt.Errorf("slam: FootprintYMin must be < FootprintYMax")
	}
	if cfg.ConfidenceDelay <= 0 {
		return fmt.Errorf("slam: ConfidenceDelay must be positive, got %d", cfg.ConfidenceDelay)
	}
	return nil
}

// WithTolerances returns a copy of cfg with the four match/merge tolerances
// replaced.
func (cfg Config) WithTolerances(smallAngular, largeAngular, smallDist, largeDist float64) Config {
	cfg.SmallAngularError = smallAngular
	cfg.LargeAngularError = largeAngular
	cfg.SmallDistError = smallDist
	cfg.LargeDistError = largeDist
	return cfg
}

// WithCorrectorDivs returns a copy of cfg with the three feedback divisors
// replaced.
func (cfg Config) WithCorrectorDivs(odometry, theta, imuTheta int32) Config {
	cfg.OdometryCorrectorDiv = odometry
	cfg.ThetaCorrectorDiv = theta
	cfg.IMUThetaCorrectorDiv = imuTheta
	return cfg
}

// WithLidarMount returns a copy of cfg with the LIDAR mounting offset
// replaced.
func (cfg Config) WithLidarMount(x, y int32) Config {
	cfg.LidarX = x
	cfg.LidarY = y
	return cfg
}

// WithFootprint returns a copy of cfg with the robot footprint rectangle
// replaced.
func (cfg Config) WithFootprint(xMin, xMax, yMin, yMax int32) Config {
	cfg.FootprintXMin = xMin
	cfg.FootprintXMax = xMax
	cfg.FootprintYMin = yMin
	cfg.FootprintYMax = yMax
	return cfg
}

// WithPolylineParams returns a copy of cfg with the extraction-stage
// parameters replaced.
func (cfg Config) WithPolylineParams(epsilon float64, distClamp int32, distMargin float64, nbPointsMin int, distMin int32) Config {
	cfg.Epsilon = epsilon
	cfg.DistClamp = distClamp
	cfg.DistMargin = distMargin
	cfg.NBPointsMin = nbPointsMin
	cfg.DistMin = distMin
	return cfg
}

// WithConfidenceDelay returns a copy of cfg with the confidence countdown
// length replaced.
func (cfg Config) WithConfidenceDelay(ticks int32) Config {
	cfg.ConfidenceDelay = ticks
	return cfg
}

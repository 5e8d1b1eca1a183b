package slam

// ConfidenceGate is the motion-driven state machine that suppresses map
// growth and merging during and shortly after commanded motion. It holds a
// countdown that resets to cfg.ConfidenceDelay whenever any commanded
// velocity component is non-zero, and only reports confidence once the
// countdown has run out and the current residual is small.
type ConfidenceGate struct {
	delay int32
}

// NewConfidenceGate returns a gate with its countdown already at
// cfg.ConfidenceDelay, matching the original's "not confident at startup"
// behavior.
func NewConfidenceGate(cfg Config) *ConfidenceGate {
	return &ConfidenceGate{delay: cfg.ConfidenceDelay}
}

// Evaluate advances the countdown (resetting it if the robot is commanded to
// move) and reports whether the pose residual is small enough, and the
// countdown has fully elapsed, for the caller to trust the current pose.
func (g *ConfidenceGate) Evaluate(vx, vy, vz int32, residual Point, deltaTheta float64, cfg Config) bool {
	if vx != 0 || vy != 0 || vz != 0 {
		g.delay = cfg.ConfidenceDelay
	}
	if g.delay > 0 {
		g.delay--
	}

	if g.delay != 0 {
		return false
	}
	if sqNorm(residual) >= int64(cfg.SmallDistError*cfg.SmallDistError) {
		return false
	}
	if absFloat(deltaTheta) >= cfg.SmallAngularError {
		return false
	}
	return true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

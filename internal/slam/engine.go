package slam

import "math"

// Engine owns the process-lifetime SLAM state: the world-frame Map, the
// current Pose, and the confidence gate. It is not safe for concurrent use;
// callers (the main loop) own it exclusively, per the single cooperative
// loop model.
type Engine struct {
	cfg  Config
	Map  *Map
	Pose Pose
	gate *ConfidenceGate

	// Confidence is the gate's output as of the last SLAM update.
	Confidence bool

	// thetaCorrector accumulates the angular feedback term when an IMU
	// drives Pose.Theta directly, rather than the SLAM residual.
	thetaCorrector int32
}

// NewEngine returns an Engine with an empty map, a zero pose, and an
// un-confident gate, ready for the first tick.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:  cfg,
		Map:  NewMap(),
		Pose: Pose{},
		gate: NewConfidenceGate(cfg),
	}
}

// ObserveScan runs the full perception pipeline (scan ingest, polyline
// extraction, line fitting) on one revolution of polar returns, returning
// the resulting robot-frame segments ordered by descending squared length.
// An empty or entirely-degenerate scan yields a nil slice; passing that to
// UpdateFromScan leaves the map and pose unchanged and only advances the
// confidence gate.
func (e *Engine) ObserveScan(scan []PolarPoint) []Segment {
	ring := lidarToRobot(scan, e.cfg)
	if len(ring.points) == 0 {
		return nil
	}
	runs := extractRawLines(ring, e.cfg)
	if len(runs) == 0 {
		return nil
	}
	segs := fitLines(runs)
	sortByLengthDesc(segs)
	return segs
}

func sortByLengthDesc(segs []Segment) {
	// insertion sort: revolutions produce at most a few dozen segments, so a
	// simple in-place sort is enough here.
	for i := 1; i < len(segs); i++ {
		for j := i; j > 0 && sqDist(segs[j]) > sqDist(segs[j-1]); j-- {
			segs[j], segs[j-1] = segs[j-1], segs[j]
		}
	}
}

// UpdateFromScan transforms the observed robot-frame segments into the
// world frame using the current Pose, runs the match/merge/correct SLAM
// step against e.Map, updates e.Pose from the accumulated residual, and
// refreshes e.Confidence. vx, vy, vz are the last commanded velocities (for
// the confidence gate); useIMU selects whether the angular residual feeds
// e.thetaCorrector (IMU present) or Pose.Theta directly.
func (e *Engine) UpdateFromScan(observedRobot []Segment, vx, vy, vz int32, useIMU bool) {
	observed := make([]Segment, len(observedRobot))
	for i, s := range observedRobot {
		observed[i] = robotToMap(s, e.Pose)
	}

	residual, deltaTheta, weight, novel := e.matchMergeAdmit(observed)

	var newConfidence bool
	if weight > 0 {
		meanP := Point{
			X: int32(float64(residual.X) / weight),
			Y: int32(float64(residual.Y) / weight),
		}
		newConfidence = e.gate.Evaluate(vx, vy, vz, meanP, deltaTheta/weight, e.cfg)
	} else {
		newConfidence = e.gate.Evaluate(vx, vy, vz, Point{}, 0, e.cfg)
	}

	if newConfidence {
		e.Map.Segments = append(e.Map.Segments, novel...)
	}

	e.Map.sortByLength()

	if weight > 0 {
		meanP := Point{
			X: int32(float64(residual.X) / weight),
			Y: int32(float64(residual.Y) / weight),
		}
		e.Pose.Position.X -= meanP.X / e.cfg.OdometryCorrectorDiv
		e.Pose.Position.Y -= meanP.Y / e.cfg.OdometryCorrectorDiv

		meanTheta := deltaTheta / weight
		delta16 := angle16DeltaFromRadians(meanTheta)
		if useIMU {
			e.thetaCorrector += delta16 / e.cfg.IMUThetaCorrectorDiv
		} else {
			e.Pose.Theta += Angle16(delta16 / e.cfg.ThetaCorrectorDiv)
		}
	}

	e.Confidence = newConfidence
}

// matchMergeAdmit runs step 2 of the SLAM update: for each observation it
// walks e.Map (in current order) looking for a matching segment, mutating
// the map in place (growing and merging) on a confident, tight match, and
// collects unmatched observations into the returned novel slice. It also
// returns the weighted residual accumulators (not yet divided by weight)
// and the total weight. The merge gate uses e.Confidence as it stood at the
// start of this tick (the prior tick's confidence), matching spec.md 4.7's
// "current confidence" input.
func (e *Engine) matchMergeAdmit(observed []Segment) (residual Point, deltaTheta float64, weight float64, novel []Segment) {
	priorConfidence := e.Confidence

	for _, o := range observed {
		matched := false
		mid := o.Midpoint()

		j := 0
		for j < len(e.Map.Segments) {
			m := e.Map.Segments[j]

			alpha := diffAngle(lineAngle(o), lineAngle(m))
			if absFloat(alpha) > e.cfg.LargeAngularError {
				j++
				continue
			}

			f := footOffset(mid, m)
			d := distOf(f)
			if float64(d) > e.cfg.LargeDistError {
				j++
				continue
			}

			length := math.Sqrt(float64(sqDist(m)))
			t1 := ratioPointLine(o.A, m) * length
			t2 := ratioPointLine(o.B, m) * length
			if outsideRange(t1, e.cfg.LargeDistError, length) && outsideRange(t2, e.cfg.LargeDistError, length) && t1*t2 > 0 {
				j++
				continue
			}

			matched = true
			w := length
			residual.X += int32(float64(f.X) * w)
			residual.Y += int32(float64(f.Y) * w)
			deltaTheta += alpha * w
			weight += w

			if !priorConfidence || absFloat(alpha) > e.cfg.SmallAngularError {
				j++
				continue
			}
			if float64(d) > e.cfg.SmallDistError {
				j++
				continue
			}
			if outsideRange(t1, e.cfg.SmallDistError, length) && outsideRange(t2, e.cfg.SmallDistError, length) && t1*t2 > 0 {
				j++
				continue
			}

			grew := growLine(o.A, &m) || growLine(o.B, &m)
			e.Map.Segments[j] = m
			if !grew {
				j++
				continue
			}

			e.mergeInto(j)
			break
		}

		if !matched {
			novel = append(novel, o)
		}
	}

	return residual, deltaTheta, weight, novel
}

// mergeInto absorbs every other map segment that is colinear with (and
// spans into) e.Map.Segments[j] into that segment, removing the absorbed
// segments from the map. Index j is adjusted as earlier entries are
// removed so it keeps pointing at the growing segment.
func (e *Engine) mergeInto(j int) {
	k := 0
	for k < len(e.Map.Segments) {
		if k == j {
			k++
			continue
		}
		target := e.Map.Segments[j]
		other := e.Map.Segments[k]
		if !testLines(target, other, e.cfg) {
			k++
			continue
		}

		growLine(other.A, &target)
		growLine(other.B, &target)
		e.Map.Segments[j] = target

		e.Map.Segments = append(e.Map.Segments[:k], e.Map.Segments[k+1:]...)
		if k < j {
			j--
		}
	}
}

func distOf(p Point) int32 {
	return int32(math.Sqrt(float64(sqNorm(p))))
}

func outsideRange(t, tol, length float64) bool {
	return t < -tol || t > length+tol
}

// CurrentPose returns the engine's most recently corrected pose.
func (e *Engine) CurrentPose() Pose { return e.Pose }

// CurrentMap returns the engine's current map segments. The returned
// slice is shared with the engine and must not be mutated by the caller.
func (e *Engine) CurrentMap() []Segment { return e.Map.Segments }

// CurrentConfidence returns the gate's output as of the last update.
func (e *Engine) CurrentConfidence() bool { return e.Confidence }

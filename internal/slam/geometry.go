package slam

import "math"

// Point is a 2-D integer point in millimetres, in a frame implied by
// context (robot frame or world frame).
type Point struct {
	X, Y int32
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Segment is a directed line from A to B in millimetres. A must not equal B.
type Segment struct {
	A, B Point
}

// Midpoint returns the segment's midpoint, truncated toward zero.
func (s Segment) Midpoint() Point {
	return Point{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2}
}

// sqNorm returns the squared Euclidean norm of p.
func sqNorm(p Point) int64 {
	return int64(p.X)*int64(p.X) + int64(p.Y)*int64(p.Y)
}

// sqDist returns the squared length of a segment.
func sqDist(s Segment) int64 {
	return sqNorm(s.B.Sub(s.A))
}

// sqDistPoints returns the squared distance between two points.
func sqDistPoints(p, q Point) int64 {
	return sqNorm(q.Sub(p))
}

// lineAngle returns the direction of s, from A to B, in radians in (-pi, pi].
func lineAngle(s Segment) float64 {
	d := s.B.Sub(s.A)
	return math.Atan2(float64(d.Y), float64(d.X))
}

// diffAngle folds angle2-angle1 into (-pi, pi].
func diffAngle(angle1, angle2 float64) float64 {
	result := angle2 - angle1
	if result > math.Pi {
		result -= 2 * math.Pi
	} else if result <= -math.Pi {
		result += 2 * math.Pi
	}
	return result
}

// ratioPointLine projects p onto the infinite line through l, returning the
// scalar t such that l.A + t*(l.B-l.A) is the foot of the perpendicular.
// Returns 0 if l.A == l.B.
func ratioPointLine(p Point, l Segment) float64 {
	d := l.B.Sub(l.A)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	diff := p.Sub(l.A)
	scalarProduct := float64(diff.X)*float64(d.X) + float64(diff.Y)*float64(d.Y)
	return scalarProduct / float64(sqNorm(d))
}

// footOffset returns p minus the foot of p's projection onto l, or (0,0) if
// the projection ratio is exactly zero (degenerate or p.A coincides with the
// projection).
func footOffset(p Point, l Segment) Point {
	ratio := ratioPointLine(p, l)
	if ratio == 0 {
		return Point{0, 0}
	}
	d := l.B.Sub(l.A)
	h := Point{
		X: l.A.X + int32(float64(d.X)*ratio),
		Y: l.A.Y + int32(float64(d.Y)*ratio),
	}
	return p.Sub(h)
}

// distancePointLine returns the (non-negative, truncated) distance from p to
// the infinite line through l. It is the length of footOffset, so it is 0
// whenever p's projection ratio onto l is exactly zero (foot at l.A), even
// if p lies off the line.
func distancePointLine(p Point, l Segment) int32 {
	off := footOffset(p, l)
	return int32(math.Sqrt(float64(sqNorm(off))))
}

// growLine extends l toward p if p's projection parameter falls outside
// [0,1]: t<0 replaces l.A with the foot, t>1 replaces l.B. Reports whether
// the segment grew. growLine never shrinks l.
func growLine(p Point, l *Segment) bool {
	ratio := ratioPointLine(p, *l)
	if ratio >= 0 && ratio <= 1 {
		return false
	}
	d := l.B.Sub(l.A)
	h := Point{
		X: l.A.X + int32(float64(d.X)*ratio),
		Y: l.A.Y + int32(float64(d.Y)*ratio),
	}
	if ratio < 0 {
		l.A = h
	} else {
		l.B = h
	}
	return true
}

// testLines reports whether line2 is colinear enough with line1, within the
// tight (Small*) tolerances, to be a merge candidate: angle difference
// within SMALLANGULARERROR, line1's midpoint within SMALLDISTERROR of the
// infinite line through line2, and at least one of line1's endpoints
// projecting into line2's span (extended by SMALLDISTERROR).
func testLines(line1, line2 Segment, cfg Config) bool {
	angle1 := lineAngle(line1)
	angle2 := lineAngle(line2)
	angle := diffAngle(angle1, angle2)

	if math.Abs(angle) >= cfg.SmallAngularError {
		return false
	}

	distance := distancePointLine(line1.Midpoint(), line2)
	if float64(distance) >= cfg.SmallDistError {
		return false
	}

	normeRef := math.Sqrt(float64(sqDist(line2)))
	distance1 := ratioPointLine(line1.A, line2) * normeRef
	distance2 := ratioPointLine(line1.B, line2) * normeRef

	inSpan := func(d float64) bool {
		return d > -cfg.SmallDistError && d < normeRef+cfg.SmallDistError
	}

	return inSpan(distance1) || inSpan(distance2)
}

package slam

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// fitLines fits a total-least-squares line segment to each raw point run,
// degenerate runs (zero-length direction, or fewer than two points) are
// silently dropped rather than producing an a==b segment (spec: numerical
// degeneracy is discarded).
func fitLines(runs [][]Point) []Segment {
	out := make([]Segment, 0, len(runs))
	for _, run := range runs {
		if seg, ok := fitLine(run); ok {
			out = append(out, seg)
		}
	}
	return out
}

// fitLine computes the principal direction of run by eigendecomposing its
// 2x2 centered covariance matrix, then clips the fitted infinite line to the
// run's extreme points, choosing the endpoint orientation that best matches
// the run's scan-order endpoints.
func fitLine(run []Point) (Segment, bool) {
	n := len(run)
	if n < 2 {
		return Segment{}, false
	}

	var sumX, sumY float64
	for _, p := range run {
		sumX += float64(p.X)
		sumY += float64(p.Y)
	}
	cx := sumX / float64(n)
	cy := sumY / float64(n)

	var sxx, sxy, syy float64
	for _, p := range run {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	cov := mat.NewSymDense(2, []float64{sxx, sxy, sxy, syy})
	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return Segment{}, false
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Eigen returns values ascending; the principal direction is the
	// eigenvector for the largest eigenvalue.
	col := 0
	if values[1] > values[0] {
		col = 1
	}
	dx := vectors.At(0, col)
	dy := vectors.At(1, col)
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return Segment{}, false
	}
	dx /= norm
	dy /= norm

	first := run[0]
	last := run[n-1]

	dist1 := math.Hypot(float64(first.X)-cx, float64(first.Y)-cy)
	dist2 := math.Hypot(float64(last.X)-cx, float64(last.Y)-cy)

	candA1 := Point{X: round32(cx + dx*dist1), Y: round32(cy + dy*dist1)}
	candB1 := Point{X: round32(cx - dx*dist2), Y: round32(cy - dy*dist2)}

	candA2 := Point{X: round32(cx - dx*dist1), Y: round32(cy - dy*dist1)}
	candB2 := Point{X: round32(cx + dx*dist2), Y: round32(cy + dy*dist2)}

	score1 := sqDistPoints(candA1, first) + sqDistPoints(candB1, last)
	score2 := sqDistPoints(candA2, first) + sqDistPoints(candB2, last)

	var a, b Point
	if score1 <= score2 {
		a, b = candA1, candB1
	} else {
		a, b = candA2, candB2
	}

	if a == b {
		return Segment{}, false
	}
	return Segment{A: a, B: b}, true
}

func round32(v float64) int32 {
	return int32(math.Round(v))
}

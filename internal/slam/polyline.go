package slam

// extractRawLines splits one revolution's robot-frame ring into contiguous
// runs of points suitable for line fitting. It first runs a closed-contour
// Douglas-Peucker simplification to find corner points, then walks the ring
// for up to 2*N logical steps (so a run straddling the seam between index
// N-1 and 0 is still captured as a single run), starting a new run whenever
// a kept (corner) point is reached or the gap to the previous point exceeds
// an adaptive, range-dependent threshold.
func extractRawLines(ring robotRing, cfg Config) [][]Point {
	n := len(ring.points)
	if n == 0 {
		return nil
	}

	kept := douglasPeuckerClosed(ring.points, cfg.Epsilon)

	var runs [][]Point
	var run []Point
	var prev Point
	havePrev := false

	angleStep := Angle16(int32(2*PI16) / int32(n))
	stepSine := sin16(angleStep)

	for i := 0; i < 2*n; i++ {
		ii := i % n
		p := ring.points[ii]

		var sqGap int64
		if havePrev {
			sqGap = sqDistPoints(p, prev)
		}
		prev = p
		havePrev = true

		dmax := int64(float64(ring.distances[ii]) * float64(stepSine) * cfg.DistMargin / float64(ONE16))
		if dmax < int64(cfg.DistClamp) {
			dmax = int64(cfg.DistClamp)
		}

		if kept[ii] || sqGap > dmax*dmax {
			size := len(run)
			if size >= cfg.NBPointsMin && i > size+1 && sqDistPoints(run[0], run[size-1]) >= int64(cfg.DistMin)*int64(cfg.DistMin) {
				runs = append(runs, run)
				if i > ii {
					break
				}
			}
			run = nil
		} else {
			run = append(run, p)
		}
	}

	return runs
}

// douglasPeuckerClosed runs Ramer-Douglas-Peucker simplification on the
// closed polygon formed by pts (in order, wrapping from the last point back
// to the first), returning a boolean mask of which input indices survive as
// corners. Closure is handled by seeding the recursion with the two points
// farthest apart as anchors, matching the behavior of a closed-contour
// simplification: every point of the ring is examined, not just one open
// chain.
func douglasPeuckerClosed(pts []Point, epsilon float64) []bool {
	n := len(pts)
	kept := make([]bool, n)
	if n < 3 {
		for i := range kept {
			kept[i] = true
		}
		return kept
	}

	i0, i1 := farthestPair(pts)
	kept[i0] = true
	kept[i1] = true

	dpRange(pts, i0, i1, epsilon, kept)
	dpRange(pts, i1, i0, epsilon, kept)

	return kept
}

// farthestPair returns the indices of the two points in pts with the
// greatest squared separation, used as stable anchors for closed-contour
// simplification.
func farthestPair(pts []Point) (int, int) {
	best := int64(-1)
	a, b := 0, 0
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := sqDistPoints(pts[i], pts[j])
			if d > best {
				best = d
				a, b = i, j
			}
		}
	}
	return a, b
}

// dpRange simplifies the cyclic chain from index from to index to
// (exclusive of both, inclusive walk going forward modulo len(pts)),
// marking survivors in kept.
func dpRange(pts []Point, from, to int, epsilon float64, kept []bool) {
	n := len(pts)
	// collect indices strictly between from and to, walking forward.
	var mid []int
	for i := (from + 1) % n; i != to; i = (i + 1) % n {
		mid = append(mid, i)
	}
	if len(mid) == 0 {
		return
	}

	far := Segment{A: pts[from], B: pts[to]}
	maxDist := -1.0
	maxIdx := -1
	for _, idx := range mid {
		d := float64(distancePointLine(pts[idx], far))
		if d > maxDist {
			maxDist = d
			maxIdx = idx
		}
	}

	if maxDist <= epsilon || maxIdx < 0 {
		return
	}

	kept[maxIdx] = true
	dpRange(pts, from, maxIdx, epsilon, kept)
	dpRange(pts, maxIdx, to, epsilon, kept)
}

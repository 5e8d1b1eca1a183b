package slam

// PolarPoint is one LIDAR return: an angle16 heading and a distance in
// millimetres, as produced by a ScanSource for a single revolution.
type PolarPoint struct {
	Theta    Angle16
	Distance int32
}

// robotRing is the output of lidarToRobot: parallel Cartesian points and
// their originating return distances, both already footprint-filtered and
// both indexed identically for extractRawLines' adaptive gap threshold.
type robotRing struct {
	points    []Point
	distances []int32
}

// lidarToRobot converts one revolution of polar returns into robot-frame
// Cartesian points, dropping any point that falls inside the robot's own
// footprint rectangle. The angular order of the input is preserved, so the
// output remains a cyclic sequence suitable for extractRawLines.
func lidarToRobot(scan []PolarPoint, cfg Config) robotRing {
	ring := robotRing{
		points:    make([]Point, 0, len(scan)),
		distances: make([]int32, 0, len(scan)),
	}
	for _, p := range scan {
		x := cfg.LidarX + int32(int64(p.Distance)*int64(sin16(p.Theta))/int64(ONE16))
		y := cfg.LidarY + int32(int64(p.Distance)*int64(cos16(p.Theta))/int64(ONE16))
		if inFootprint(x, y, cfg) {
			continue
		}
		ring.points = append(ring.points, Point{X: x, Y: y})
		ring.distances = append(ring.distances, p.Distance)
	}
	return ring
}

func inFootprint(x, y int32, cfg Config) bool {
	return x >= cfg.FootprintXMin && x <= cfg.FootprintXMax &&
		y >= cfg.FootprintYMin && y <= cfg.FootprintYMax
}

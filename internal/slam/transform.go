package slam

// robotToMap rigidly transforms a robot-frame segment into the world frame
// by rotating by pose.Theta and then translating by pose.Position. All
// trigonometry goes through the fixed-point table; results are divided by
// ONE16 with truncation toward zero.
func robotToMap(s Segment, pose Pose) Segment {
	return Segment{
		A: rotateThenTranslate(s.A, pose),
		B: rotateThenTranslate(s.B, pose),
	}
}

func rotateThenTranslate(p Point, pose Pose) Point {
	c := int64(cos16(pose.Theta))
	sn := int64(sin16(pose.Theta))
	x := pose.Position.X + int32((int64(p.X)*c-int64(p.Y)*sn)/int64(ONE16))
	y := pose.Position.Y + int32((int64(p.X)*sn+int64(p.Y)*c)/int64(ONE16))
	return Point{X: x, Y: y}
}

// mapToRobot rigidly transforms a world-frame segment into the robot frame
// by translating by -pose.Position and then rotating by -pose.Theta.
func mapToRobot(s Segment, pose Pose) Segment {
	return Segment{
		A: translateThenRotate(s.A, pose),
		B: translateThenRotate(s.B, pose),
	}
}

func translateThenRotate(p Point, pose Pose) Point {
	dx := p.X - pose.Position.X
	dy := p.Y - pose.Position.Y
	theta := -pose.Theta
	c := int64(cos16(theta))
	sn := int64(sin16(theta))
	x := int32((int64(dx)*c - int64(dy)*sn) / int64(ONE16))
	y := int32((int64(dx)*sn + int64(dy)*c) / int64(ONE16))
	return Point{X: x, Y: y}
}

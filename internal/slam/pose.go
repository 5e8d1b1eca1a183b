package slam

// Pose is the robot's estimated position and heading in the world frame.
// It is the single process-lifetime instance owned exclusively by the SLAM
// engine; Theta wraps on the full 16-bit range, Position is unbounded.
type Pose struct {
	Position Point
	Theta    Angle16
}

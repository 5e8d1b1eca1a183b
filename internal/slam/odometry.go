package slam

// IntegrateOdometry advances e.Pose for one control tick from the commanded
// velocities of a freshly validated remote frame. When imuYaw is non-nil,
// Theta is driven directly from the absolute yaw reading (scaled by DirZ)
// plus the accumulated theta_corrector feedback term; otherwise Theta
// advances by vz scaled by VZMul. Position always advances from vx/vy
// rotated into the world frame by the (possibly just-updated) Theta.
func (e *Engine) IntegrateOdometry(vx, vy, vz int32, imuYaw *Angle16) {
	if imuYaw != nil {
		e.Pose.Theta = Angle16(int32(*imuYaw)*e.cfg.DirZ) + Angle16(e.thetaCorrector)
	} else {
		e.Pose.Theta += Angle16(vz * e.cfg.VZMul)
	}

	c := int64(cos16(e.Pose.Theta))
	sn := int64(sin16(e.Pose.Theta))

	e.Pose.Position.X += int32((int64(vx)*c-int64(vy)*sn)/int64(ONE16)) / e.cfg.VXDiv
	e.Pose.Position.Y += int32((int64(vx)*sn+int64(vy)*c)/int64(ONE16)) / e.cfg.VYDiv
}

package motion

// IsGrounded casts the collider's sphere straight down from the body origin
// to just past the capsule's bottom cap.
func (c *Controller) IsGrounded() bool {
	radius := c.deps.Collider.Radius()
	dist := ProbeDistance(c.deps.Collider.Height(), radius, c.cfg.GroundClearance)
	return c.deps.Space.SphereCastDown(c.deps.Body.Position(), radius, dist, c.cfg.GroundMask)
}

// ProbeDistance is how far the ground sphere travels for a capsule of the
// given height and radius.
func ProbeDistance(height, radius, clearance float64) float64 {
	return height/2 - radius + clearance
}

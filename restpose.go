package ik2d

// initRestPose walks the chain's current world transforms and captures the
// rest pose: every adjacent pair's bone length, every joint's rest angle,
// and every joint's rest rotation. Runs exactly once per chain, on the
// first step after attachment; the captured values are the reference frame
// for all later angle constraints.
//
// The anchor's rest angle is the direction to its immediate child; every
// other joint's is the direction of its incoming bone (predecessor to
// itself). Both conventions measure "which way does this joint's bone
// point at rest".
//
// Returns false if any joint fails to resolve, in which case the chain is
// left inert: nothing is captured, the solver skips it, and the caller must
// recreate the chain after fixing the rig.
func (c *Chain) initRestPose(joints JointResolver) bool {
	n := len(c.joints)
	nodes := make([]*Node, n)
	for i, id := range c.joints {
		node := joints.Joint(id)
		if node == nil || node.IsDisposed() {
			c.state = chainInert
			diagnosticf("chain init failed: joint %d not in scene graph", id)
			return false
		}
		nodes[i] = node
	}

	for i := 0; i < n-1; i++ {
		prev := nodes[i].WorldPosition()
		next := nodes[i+1].WorldPosition()
		c.setBone(c.joints[i], c.joints[i+1], next.Dist(prev))

		// Incoming-bone direction for the successor; the anchor gets the
		// same segment looking outward.
		dir := next.Sub(prev)
		if i == 0 {
			c.restAngles[c.joints[0]] = dir.Angle()
		}
		c.restAngles[c.joints[i+1]] = dir.Angle()
	}

	for i, node := range nodes {
		c.restRotations[c.joints[i]] = node.WorldRotation()
	}

	c.state = chainIdle
	return true
}

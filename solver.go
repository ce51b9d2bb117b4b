package ik2d

// SolveResult reports what a solve pass did with a chain.
type SolveResult uint8

const (
	// SolveSkipped: no target, an unresolvable joint or follow entity, or an
	// uninitialized/inert chain. Nothing was written.
	SolveSkipped SolveResult = iota
	// SolveConverged: the effector ended within epsilon of the target.
	SolveConverged
	// SolveExhausted: the iteration budget ran out before convergence
	// (typical for unreachable targets — the chain is left fully extended
	// toward the target).
	SolveExhausted
)

// defaultAxis is the direction used when a degenerate segment has no
// previous segment to borrow a direction from.
var defaultAxis = Vec2{X: 1}

// solve runs the FABRIK loop for one chain and writes the results back
// through the world setters. Position and rotation are solved entirely in
// world space and converted to parent-relative locals only on write-back,
// so chain joints may be parented under arbitrary moving nodes.
//
// Convergence is best effort: each iteration pulls the effector onto the
// target, restores bone lengths walking back to the anchor, re-pins the
// anchor, then walks forward re-placing every joint at bone length along
// its (angle-clamped) direction. Angle limits are enforced on the forward
// pass only; clamping both passes makes them fight each other and stalls
// convergence.
func (c *Chain) solve(joints JointResolver, dt float64) SolveResult {
	if c.state != chainIdle {
		return SolveSkipped
	}
	if c.target.Kind() == TargetNone {
		return SolveSkipped
	}

	target, ok := c.target.resolve(joints, dt)
	if !ok {
		debugf("chain: target unresolvable, skipping this tick")
		return SolveSkipped
	}

	n := len(c.joints)
	last := n - 1

	nodes := make([]*Node, n)
	for i, id := range c.joints {
		node := joints.Joint(id)
		if node == nil || node.IsDisposed() {
			debugf("chain: joint %d unresolvable, skipping this tick", id)
			return SolveSkipped
		}
		nodes[i] = node
	}

	pos := c.positions
	rot := c.rotations
	for i, node := range nodes {
		pos[i] = node.WorldPosition()
		rot[i] = node.WorldRotation()
	}

	// The anchor is never moved by the chain itself; only external forces
	// (reparenting, a moving parent) do. Snapshot it for re-pinning.
	anchorPos := pos[0]
	anchorRot := rot[0]

	epsSq := c.epsilon * c.epsilon
	converged := false
	touched := false

	for it := 0; it < c.iterations; it++ {
		if pos[last].DistSq(target) < epsSq {
			converged = true
			break
		}
		touched = true

		// Effector pull: put the effector on the target. Length and angle
		// constraints are restored by the passes below.
		pos[last] = target

		// Backward pass, effector to anchor: re-clamp each bone to its rest
		// length by pulling the predecessor toward its successor. No angle
		// limits here.
		lastDir := defaultAxis
		for i := last; i >= 1; i-- {
			dir := pos[i-1].Sub(pos[i]).NormalizeOr(lastDir)
			pos[i-1] = pos[i].Add(dir.Scale(c.boneLenAt(i - 1)))
			lastDir = dir
		}

		// Effector rotation: face the target, or face away from the
		// predecessor when the effector sits on the target (the usual case
		// right after the pull above).
		toTarget := target.Sub(pos[last])
		if toTarget.LengthSq() < minDirLen*minDirLen {
			toTarget = pos[last].Sub(pos[last-1]).NormalizeOr(defaultAxis)
		}
		effID := c.joints[last]
		rot[last] = c.restRotations[effID] + wrapAngle(toTarget.Angle()-c.restAngles[effID])

		// Anchor re-pin.
		pos[0] = anchorPos
		rot[0] = anchorRot

		// Forward pass, anchor to effector: the only pass that enforces
		// angle limits, in chain order so each joint is clamped against its
		// actual (already clamped) parent direction. Seeded by the anchor's
		// rest direction carried along with however far the anchor itself
		// has rotated since rest.
		anchorID := c.joints[0]
		prevAngle := c.restAngles[anchorID] + wrapAngle(anchorRot-c.restRotations[anchorID])
		for i := 0; i < last; i++ {
			seg := pos[i+1].Sub(pos[i])
			ang := prevAngle
			if seg.LengthSq() >= minDirLen*minDirLen {
				ang = seg.Angle()
			}
			delta := wrapAngle(ang - prevAngle)
			if jc, ok := c.constraints[c.joints[i]]; ok {
				delta = clampAngle(delta, -jc.CW, jc.CCW)
			}
			ang = prevAngle + delta

			pos[i+1] = pos[i].Add(FromAngle(ang).Scale(c.boneLenAt(i)))
			// Bone i's rest direction is stored under its distal joint, so a
			// pose identical to the rest pose reconstructs every joint's rest
			// rotation exactly, bent rigs included.
			id := c.joints[i]
			rot[i] = c.restRotations[id] + wrapAngle(ang-c.restAngles[c.joints[i+1]])
			prevAngle = ang
		}

		// The loop above set rotations for joints 0..n-2; clamp the
		// effector's facing against the last propagated direction too.
		facing := c.restAngles[effID] + wrapAngle(rot[last]-c.restRotations[effID])
		delta := wrapAngle(facing - prevAngle)
		if jc, ok := c.constraints[effID]; ok {
			delta = clampAngle(delta, -jc.CW, jc.CCW)
		}
		rot[last] = c.restRotations[effID] + wrapAngle(prevAngle+delta-c.restAngles[effID])
	}

	// Already within epsilon before the first pull: leave the scene graph
	// untouched.
	if !touched {
		return SolveConverged
	}

	// The loop's check runs before each pass; count a final pass that
	// landed within epsilon as converged too.
	if !converged && pos[last].DistSq(target) < epsSq {
		converged = true
	}

	// Write back anchor-first so that when a joint's parent is the previous
	// joint, the local rederivation sees the parent's fresh world transform.
	for i, node := range nodes {
		node.SetWorldPosition(pos[i])
		node.SetWorldRotation(wrapAngle(rot[i]))
	}

	if converged {
		return SolveConverged
	}
	return SolveExhausted
}

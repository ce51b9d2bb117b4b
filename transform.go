package ik2d

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order: Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	sx := n.ScaleX
	sy := n.ScaleY
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		n.X, n.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's local rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next propagation. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.worldTransform)
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// --- World accessors ---

// WorldPosition returns the node's world-space position, read from the
// cached world transform. Only valid after propagation or a world setter.
func (n *Node) WorldPosition() Vec2 {
	return Vec2{n.worldTransform[4], n.worldTransform[5]}
}

// WorldRotation returns the node's world-space rotation in radians,
// decomposed from the cached world transform. The decomposition assumes no
// skew and positive scales anywhere in the node's ancestor path; motion in
// ik2d rigs is planar rigid, so that holds for every chain joint.
func (n *Node) WorldRotation() float64 {
	return math.Atan2(n.worldTransform[1], n.worldTransform[0])
}

// --- World setters (the solver's write path) ---

// SetWorldPosition moves the node to the given world position, rederiving
// the local position under the parent's current world transform. Both the
// local fields and the cached world transform are updated so they stay
// mutually consistent even though propagation already ran this tick.
// Descendants are marked dirty for the next propagation.
func (n *Node) SetWorldPosition(pos Vec2) {
	if n.Parent != nil {
		n.X, n.Y = n.Parent.WorldToLocal(pos.X, pos.Y)
	} else {
		n.X, n.Y = pos.X, pos.Y
	}
	n.refreshWorld()
}

// SetWorldRotation sets the node's world-space rotation, rederiving the
// local rotation under the parent's current world rotation. Same
// consistency behavior as SetWorldPosition.
func (n *Node) SetWorldRotation(angle float64) {
	if n.Parent != nil {
		n.Rotation = wrapAngle(angle - n.Parent.WorldRotation())
	} else {
		n.Rotation = angle
	}
	n.refreshWorld()
}

// refreshWorld recomputes this node's world transform from its (just
// updated) local fields and the parent's cached world transform, then marks
// children dirty so stale descendants are fixed on the next propagation.
// Chain joints are written anchor-first, so a joint's parent (when it is
// also in the chain) is always refreshed before the joint itself.
func (n *Node) refreshWorld() {
	parentTransform := identityTransform
	if n.Parent != nil {
		parentTransform = n.Parent.worldTransform
	}
	n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
	n.transformDirty = false
	for _, child := range n.children {
		markSubtreeDirty(child)
	}
}

package ik2d

import "math"

// JointResolver maps a joint id to its scene node. The scene graph owns the
// nodes; chains only ever hold ids, so a chain never outlives its joints by
// accident — a dead id simply fails to resolve and the chain is skipped.
type JointResolver interface {
	Joint(id JointID) *Node
}

// JointConstraint limits how far a joint may rotate away from its rest
// direction: CCW counter-clockwise and CW clockwise, both in [0, π].
// π on both sides is full freedom.
type JointConstraint struct {
	CCW float64
	CW  float64
}

// JointConstraintEntry pairs a joint with its constraint for
// Chain.WithJointConstraints.
type JointConstraintEntry struct {
	Joint      JointID
	Constraint JointConstraint
}

// bonePair keys the bone-length map. Entries are stored in both directions
// so bone(a,b) == bone(b,a) without ordering the pair at lookup time.
type bonePair struct {
	a, b JointID
}

// defaultBoneLength is substituted when a bone entry is missing at solve
// time. A missing entry is a configuration error (the initializer fills the
// map for every adjacent pair), so this only papers over external map edits.
const defaultBoneLength = 10.0

const (
	defaultIterations = 10
	defaultEpsilon    = 1.0
)

// chainState tracks the per-chain lifecycle.
type chainState uint8

const (
	chainUninitialized chainState = iota // rest pose not captured yet
	chainIdle                            // ready to solve
	chainInert                           // rest-pose capture failed; skipped until recreated
)

// Chain is one IK unit: an ordered run of joints from a proximal anchor
// (position pinned, rotation free) to a distal effector driven toward the
// target. Create with NewChain, configure with the With* builders, attach to
// a Scene, and mutate at runtime through SetTarget/RemoveTarget.
type Chain struct {
	joints []JointID

	// Rest pose, captured once on the first step after attachment.
	bones         map[bonePair]float64
	restAngles    map[JointID]float64
	restRotations map[JointID]float64

	constraints map[JointID]JointConstraint

	target     Target
	iterations int
	epsilon    float64

	state chainState

	// Solver scratch, reused across ticks to avoid per-tick allocation.
	positions []Vec2
	rotations []float64
}

// NewChain creates a chain over the given joints, anchor first, effector
// last. Panics if fewer than 2 joints are given. Defaults: 10 iterations,
// epsilon 1.0 (pick an epsilon smaller than your smallest bone length).
func NewChain(joints ...JointID) *Chain {
	if len(joints) < 2 {
		panic("ik2d: chain needs at least 2 joints")
	}
	c := &Chain{
		joints:        append([]JointID(nil), joints...),
		bones:         make(map[bonePair]float64),
		restAngles:    make(map[JointID]float64),
		restRotations: make(map[JointID]float64),
		constraints:   make(map[JointID]JointConstraint),
		target:        NoTarget(),
		iterations:    defaultIterations,
		epsilon:       defaultEpsilon,
		positions:     make([]Vec2, len(joints)),
		rotations:     make([]float64, len(joints)),
	}
	return c
}

// WithIterations sets the maximum number of solver passes per tick.
// Panics if n is not positive.
func (c *Chain) WithIterations(n int) *Chain {
	if n <= 0 {
		panic("ik2d: iterations must be positive")
	}
	c.iterations = n
	return c
}

// WithEpsilon sets the position-convergence tolerance. The solver stops
// early once the effector is within e of the target. Panics if e is not
// positive.
func (c *Chain) WithEpsilon(e float64) *Chain {
	if e <= 0 {
		panic("ik2d: epsilon must be positive")
	}
	c.epsilon = e
	return c
}

// WithTarget sets the initial target.
func (c *Chain) WithTarget(t Target) *Chain {
	c.target = t
	return c
}

// WithJointConstraints sets angle limits for the listed joints. Joints
// without an entry are unconstrained (full ±π freedom). Panics if any limit
// lies outside [0, π].
func (c *Chain) WithJointConstraints(entries ...JointConstraintEntry) *Chain {
	for _, e := range entries {
		if e.Constraint.CCW < 0 || e.Constraint.CCW > math.Pi ||
			e.Constraint.CW < 0 || e.Constraint.CW > math.Pi {
			panic("ik2d: joint constraint limits must be in [0, π]")
		}
		c.constraints[e.Joint] = e.Constraint
	}
	return c
}

// SetTarget replaces the chain's target. Takes effect next tick.
func (c *Chain) SetTarget(t Target) {
	c.target = t
}

// RemoveTarget clears the chain's target; the solver skips the chain until
// a new one is set.
func (c *Chain) RemoveTarget() {
	c.target = NoTarget()
}

// Target returns the chain's current target.
func (c *Chain) Target() Target {
	return c.target
}

// Joints returns the chain's joint ids, anchor first. The returned slice
// MUST NOT be mutated.
func (c *Chain) Joints() []JointID {
	return c.joints
}

// Effector returns the id of the chain's last joint.
func (c *Chain) Effector() JointID {
	return c.joints[len(c.joints)-1]
}

// Anchor returns the id of the chain's first joint.
func (c *Chain) Anchor() JointID {
	return c.joints[0]
}

// Constraint returns the angle limits for a joint, if it has any.
func (c *Chain) Constraint(id JointID) (JointConstraint, bool) {
	jc, ok := c.constraints[id]
	return jc, ok
}

// BoneLength returns the rest length between two adjacent joints. Falls
// back to defaultBoneLength if the entry is missing (configuration error).
func (c *Chain) BoneLength(a, b JointID) float64 {
	if l, ok := c.bones[bonePair{a, b}]; ok {
		return l
	}
	return defaultBoneLength
}

// RestAngle returns the world direction captured for a joint at
// initialization, the zero reference for its angle constraint.
func (c *Chain) RestAngle(id JointID) float64 {
	return c.restAngles[id]
}

// setBone stores a bone length in both directions.
func (c *Chain) setBone(a, b JointID, length float64) {
	c.bones[bonePair{a, b}] = length
	c.bones[bonePair{b, a}] = length
}

// boneLenAt returns the bone length between joints i and i+1.
func (c *Chain) boneLenAt(i int) float64 {
	return c.BoneLength(c.joints[i], c.joints[i+1])
}

package ik2d

import (
	"math"
	"testing"
)

// buildChain lays out n joints along the +X axis, spacing apart, as direct
// children of the scene root, and returns their ids.
func buildChain(scene *Scene, n int, spacing float64) []JointID {
	ids := make([]JointID, n)
	for i := 0; i < n; i++ {
		node := NewNode("")
		node.X = float64(i) * spacing
		scene.Root().AddChild(node)
		ids[i] = node.ID
	}
	return ids
}

func TestNewChainDefaults(t *testing.T) {
	c := NewChain(1, 2, 3)
	if c.iterations != 10 {
		t.Errorf("iterations = %d, want 10", c.iterations)
	}
	assertNear(t, "epsilon", c.epsilon, 1.0)
	if c.Target().Kind() != TargetNone {
		t.Error("new chain should have no target")
	}
	if c.Anchor() != 1 || c.Effector() != 3 {
		t.Errorf("anchor/effector = %d/%d", c.Anchor(), c.Effector())
	}
}

func TestNewChainTooShortPanics(t *testing.T) {
	expectPanic(t, "empty", func() { NewChain() })
	expectPanic(t, "single", func() { NewChain(1) })
}

func TestBuilderValidation(t *testing.T) {
	c := NewChain(1, 2)
	expectPanic(t, "zero iterations", func() { c.WithIterations(0) })
	expectPanic(t, "negative epsilon", func() { c.WithEpsilon(-1) })
	expectPanic(t, "ccw out of range", func() {
		c.WithJointConstraints(JointConstraintEntry{Joint: 1, Constraint: JointConstraint{CCW: 4, CW: 1}})
	})
	expectPanic(t, "negative cw", func() {
		c.WithJointConstraints(JointConstraintEntry{Joint: 1, Constraint: JointConstraint{CCW: 1, CW: -0.1}})
	})
}

func TestBuilderChaining(t *testing.T) {
	c := NewChain(1, 2, 3).
		WithIterations(5).
		WithEpsilon(0.25).
		WithTarget(PositionTarget(Vec2{1, 2})).
		WithJointConstraints(JointConstraintEntry{Joint: 2, Constraint: JointConstraint{CCW: 1, CW: 0.5}})

	if c.iterations != 5 {
		t.Errorf("iterations = %d", c.iterations)
	}
	assertNear(t, "epsilon", c.epsilon, 0.25)
	if c.Target().Kind() != TargetPosition {
		t.Error("target not set")
	}
	jc, ok := c.Constraint(2)
	if !ok {
		t.Fatal("constraint missing")
	}
	assertNear(t, "ccw", jc.CCW, 1)
	assertNear(t, "cw", jc.CW, 0.5)
}

func TestBoneLengthSymmetric(t *testing.T) {
	c := NewChain(1, 2)
	c.setBone(1, 2, 7.5)
	assertNear(t, "bone(1,2)", c.BoneLength(1, 2), 7.5)
	assertNear(t, "bone(2,1)", c.BoneLength(2, 1), 7.5)
}

func TestBoneLengthMissingFallsBack(t *testing.T) {
	c := NewChain(1, 2)
	assertNear(t, "missing bone", c.BoneLength(1, 2), defaultBoneLength)
}

func TestSetAndRemoveTarget(t *testing.T) {
	c := NewChain(1, 2)
	c.SetTarget(PositionTarget(Vec2{3, 4}))
	if c.Target().Kind() != TargetPosition {
		t.Error("SetTarget did not take")
	}
	c.RemoveTarget()
	if c.Target().Kind() != TargetNone {
		t.Error("RemoveTarget did not take")
	}
}

// --- Rest-pose capture ---

func TestRestPoseCapture(t *testing.T) {
	scene := NewScene()
	ids := buildChain(scene, 3, 10)
	scene.Propagate()

	c := NewChain(ids...)
	if !c.initRestPose(scene) {
		t.Fatal("init failed")
	}

	assertNearTol(t, "bone 0-1", c.BoneLength(ids[0], ids[1]), 10, 1e-9)
	assertNearTol(t, "bone 1-0", c.BoneLength(ids[1], ids[0]), 10, 1e-9)
	assertNearTol(t, "bone 1-2", c.BoneLength(ids[1], ids[2]), 10, 1e-9)

	// Collinear +X layout: every rest angle is 0.
	for _, id := range ids {
		assertNear(t, "rest angle", c.RestAngle(id), 0)
	}
	if c.state != chainIdle {
		t.Error("chain should be idle after capture")
	}
}

func TestRestPoseAnglesBentLayout(t *testing.T) {
	scene := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	cNode := NewNode("c")
	b.X = 10         // bone a→b points +X
	cNode.Y = 10     // bone b→c points +Y
	scene.Root().AddChild(a)
	scene.Root().AddChild(b)
	b.AddChild(cNode) // c world = (10, 10)
	scene.Propagate()

	c := NewChain(a.ID, b.ID, cNode.ID)
	if !c.initRestPose(scene) {
		t.Fatal("init failed")
	}

	// Anchor uses the direction to its child; the others use the incoming
	// bone's direction.
	assertNear(t, "anchor rest", c.RestAngle(a.ID), 0)
	assertNear(t, "b rest", c.RestAngle(b.ID), 0)
	assertNear(t, "c rest", c.RestAngle(cNode.ID), math.Pi/2)
}

func TestRestPoseCapturesRotation(t *testing.T) {
	scene := NewScene()
	a := NewNode("a")
	b := NewNode("b")
	a.Rotation = 0.5
	b.X = 10
	scene.Root().AddChild(a)
	scene.Root().AddChild(b)
	scene.Propagate()

	c := NewChain(a.ID, b.ID)
	if !c.initRestPose(scene) {
		t.Fatal("init failed")
	}
	assertNear(t, "rest rotation", c.restRotations[a.ID], 0.5)
}

func TestRestPoseMissingJointGoesInert(t *testing.T) {
	scene := NewScene()
	ids := buildChain(scene, 2, 10)
	scene.Propagate()

	c := NewChain(ids[0], 9999) // 9999 is not in the tree
	if c.initRestPose(scene) {
		t.Fatal("init should fail")
	}
	if c.state != chainInert {
		t.Error("chain should be inert")
	}

	// Inert chains are skipped by the solver, permanently.
	c.SetTarget(PositionTarget(Vec2{5, 5}))
	if got := scene.SolveChain(c, 1.0/60); got != SolveSkipped {
		t.Errorf("SolveChain = %v, want SolveSkipped", got)
	}
}

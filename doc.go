// Package ik2d is an iterative inverse-kinematics solver for articulated 2D
// chains, built around a small retained-mode transform hierarchy.
//
// A chain is an ordered run of scene nodes from an anchor to an effector.
// Each tick the solver pulls the effector toward a target with a FABRIK-style
// two-pass reach (backward length restore, forward angle clamp) while keeping
// bone lengths fixed and joint rotations inside their configured limits
// relative to the rig's rest pose.
//
// # Quick start
//
//	scene := ik2d.NewScene()
//
//	var joints []ik2d.JointID
//	for i := 0; i < 5; i++ {
//		n := ik2d.NewNode("")
//		n.X = float64(i) * 50
//		scene.Root().AddChild(n)
//		joints = append(joints, n.ID)
//	}
//
//	chain := ik2d.NewChain(joints...).
//		WithIterations(10).
//		WithEpsilon(0.01).
//		WithTarget(ik2d.PositionTarget(ik2d.Vec2{X: 120, Y: 80}))
//	scene.AttachChain(chain)
//
//	// once per simulation step:
//	scene.Step(1.0 / 60)
//
// In an [Ebitengine] game, call [Scene.Update] from your game's Update and
// optionally [Scene.DrawDebug] from Draw to visualize joints, bones, and
// angle limits. ik2d does no rendering of its own.
//
// # Rest pose
//
// When a chain is first stepped, the solver captures every bone's length and
// every joint's direction and rotation from the current world transforms.
// That snapshot is the rest pose: angle limits are measured against it, and
// solved rotations are reconstructed relative to it, so constraints follow
// the rig's natural pose rather than a world axis.
//
// # Targets
//
// A chain's target is one of: none (the chain is skipped), a fixed world
// position, another node's live position, or a scripted path tweened with
// [gween]. Targets can be swapped at runtime and take effect next tick.
//
// # ECS integration
//
// The ik2d/ecs sub-module stores chains as [Donburi] components and drives
// them from an ECS system, publishing an event when a chain converges.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package ik2d

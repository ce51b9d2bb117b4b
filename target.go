package ik2d

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TargetKind discriminates the Target variants.
type TargetKind uint8

const (
	TargetNone     TargetKind = iota // chain is skipped by the solver
	TargetPosition                   // fixed world point
	TargetEntity                     // another node's live world position
	TargetPath                       // scripted trajectory, tweened over time
)

// Target is what a chain's effector is driven toward. Construct with
// NoTarget, PositionTarget, EntityTarget, or PathTarget.
type Target struct {
	kind   TargetKind
	pos    Vec2
	entity JointID
	path   *pathAnim
}

// pathAnim holds active trajectory tweens for target X and Y,
// mirroring the paired-axis tween shape used for camera scrolling.
type pathAnim struct {
	tweenX  *gween.Tween
	tweenY  *gween.Tween
	current Vec2
	done    bool
}

// NoTarget returns the empty target. A chain with no target is left
// untouched by the solver.
func NoTarget() Target {
	return Target{kind: TargetNone}
}

// PositionTarget returns a target at a fixed world position.
func PositionTarget(pos Vec2) Target {
	return Target{kind: TargetPosition, pos: pos}
}

// EntityTarget returns a target that follows the given node's world
// position, resolved fresh each solve. If the node cannot be resolved the
// chain skips that tick and retries on the next one.
func EntityTarget(id JointID) Target {
	return Target{kind: TargetEntity, entity: id}
}

// PathTarget returns a target that travels from one world position to
// another over duration seconds with the given easing, then holds the
// endpoint. The trajectory advances by the dt passed to Scene.Step.
func PathTarget(from, to Vec2, duration float32, easeFn ease.TweenFunc) Target {
	return Target{
		kind: TargetPath,
		path: &pathAnim{
			tweenX:  gween.New(float32(from.X), float32(to.X), duration, easeFn),
			tweenY:  gween.New(float32(from.Y), float32(to.Y), duration, easeFn),
			current: from,
		},
	}
}

// Kind returns the target's variant.
func (t Target) Kind() TargetKind {
	return t.kind
}

// resolve returns the target's current world position, advancing path
// targets by dt. ok is false when the target is empty or an entity target
// cannot be resolved this tick.
func (t Target) resolve(joints JointResolver, dt float64) (pos Vec2, ok bool) {
	switch t.kind {
	case TargetPosition:
		return t.pos, true
	case TargetEntity:
		n := joints.Joint(t.entity)
		if n == nil || n.IsDisposed() {
			return Vec2{}, false
		}
		return n.WorldPosition(), true
	case TargetPath:
		p := t.path
		if !p.done {
			x, doneX := p.tweenX.Update(float32(dt))
			y, doneY := p.tweenY.Update(float32(dt))
			p.current = Vec2{float64(x), float64(y)}
			p.done = doneX && doneY
		}
		return p.current, true
	default:
		return Vec2{}, false
	}
}

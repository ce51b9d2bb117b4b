package ik2d

import (
	"math"
	"testing"
)

func TestVec2Basics(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	assertVec(t, "add", a.Add(b), Vec2{4, 2})
	assertVec(t, "sub", a.Sub(b), Vec2{2, 6})
	assertVec(t, "scale", b.Scale(2), Vec2{2, -4})
	assertNear(t, "length", a.Length(), 5)
	assertNear(t, "lengthSq", a.LengthSq(), 25)
	assertNear(t, "dist", a.Dist(Vec2{3, 0}), 4)
	assertNear(t, "distSq", a.DistSq(Vec2{3, 0}), 16)
}

func TestVec2Angle(t *testing.T) {
	assertNear(t, "+X", Vec2{1, 0}.Angle(), 0)
	assertNear(t, "+Y", Vec2{0, 1}.Angle(), math.Pi/2)
	assertNear(t, "-X", Vec2{-1, 0}.Angle(), math.Pi)
	assertNear(t, "diag", Vec2{1, 1}.Angle(), math.Pi/4)
}

func TestVec2NormalizeOr(t *testing.T) {
	fallback := Vec2{0, 1}
	n := Vec2{10, 0}.NormalizeOr(fallback)
	assertVec(t, "unit", n, Vec2{1, 0})

	n = Vec2{}.NormalizeOr(fallback)
	assertVec(t, "degenerate uses fallback", n, fallback)
}

func TestFromAngle(t *testing.T) {
	assertVec(t, "0", FromAngle(0), Vec2{1, 0})
	v := FromAngle(math.Pi / 2)
	assertNear(t, "90.x", v.X, 0)
	assertNear(t, "90.y", v.Y, 1)
}

func TestWrapAngle(t *testing.T) {
	assertNear(t, "inside", wrapAngle(1), 1)
	assertNear(t, "over", wrapAngle(math.Pi+1), 1-math.Pi)
	assertNear(t, "under", wrapAngle(-math.Pi-1), math.Pi-1)
	assertNear(t, "two pi", wrapAngle(2*math.Pi), 0)
	assertNear(t, "pi stays", wrapAngle(math.Pi), math.Pi)
}

func TestClampAngle(t *testing.T) {
	assertNear(t, "below", clampAngle(-2, -1, 1), -1)
	assertNear(t, "above", clampAngle(2, -1, 1), 1)
	assertNear(t, "inside", clampAngle(0.5, -1, 1), 0.5)
}

package ik2d

import "math"

// JointID identifies a scene node used as an IK joint. IDs are assigned by
// NewNode and resolved through a JointResolver; the solver never creates or
// destroys joints.
type JointID uint32

// Vec2 is a 2D vector used for positions, offsets, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared length of v. Cheaper than Length when only
// comparisons are needed.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Length()
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	return v.Sub(o).LengthSq()
}

// Angle returns the direction angle of v in radians, in (-π, π].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// NormalizeOr returns v scaled to unit length, or fallback if v is too short
// to normalize without blowing up.
func (v Vec2) NormalizeOr(fallback Vec2) Vec2 {
	l := v.Length()
	if l < minDirLen {
		return fallback
	}
	return Vec2{v.X / l, v.Y / l}
}

// FromAngle returns the unit vector pointing in the given direction.
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos, sin}
}

// minDirLen is the length below which a direction vector is considered
// degenerate (two joints coinciding).
const minDirLen = 1e-9

// wrapAngle wraps an angle to (-π, π].
func wrapAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// clampAngle clamps a to [lo, hi].
func clampAngle(a, lo, hi float64) float64 {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

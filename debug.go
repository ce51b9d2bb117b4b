package ik2d

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// diagnosticf reports a non-recoverable chain condition on stderr.
// Always printed: these fire once per chain (e.g. failed rest-pose capture),
// not per tick.
func diagnosticf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[ik2d] "+format+"\n", args...)
}

// debugf reports a per-tick recoverable condition (skipped solves) on
// stderr. Gated on debug mode so a transiently missing follow entity
// doesn't flood the log at tick rate.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[ik2d] "+format+"\n", args...)
}

// DebugOptions configures the read-only debug overlay. The overlay draws
// straight from solved world transforms and never feeds back into solving.
type DebugOptions struct {
	// JointRadius is the circle radius drawn at each joint. 0 disables
	// joint circles.
	JointRadius float64
	// Bones draws a line per bone.
	Bones bool
	// AngleLimits draws each constrained joint's allowed arc, anchored at
	// the direction the forward pass measures that joint against (the
	// incoming bone, or the anchor's rest-relative direction).
	AngleLimits bool
	// ArcRadius is the radius of the angle-limit arcs. Defaults to
	// 3x JointRadius when 0.
	ArcRadius float64

	// Colors. Zero values get visible defaults.
	JointColor color.Color
	BoneColor  color.Color
	LimitColor color.Color
}

func (o *DebugOptions) fillDefaults() {
	if o.JointColor == nil {
		o.JointColor = color.RGBA{R: 0x30, G: 0xc0, B: 0xff, A: 0xff}
	}
	if o.BoneColor == nil {
		o.BoneColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}
	}
	if o.LimitColor == nil {
		o.LimitColor = color.RGBA{R: 0xff, G: 0x50, B: 0x30, A: 0xc0}
	}
	if o.ArcRadius == 0 {
		o.ArcRadius = o.JointRadius * 3
	}
}

// DrawDebug draws every attached chain's joints, bones, and angle limits
// onto screen. World coordinates map 1:1 to screen pixels; apply your own
// camera transform before calling if you need one.
func (s *Scene) DrawDebug(screen *ebiten.Image, opts DebugOptions) {
	opts.fillDefaults()
	for _, c := range s.chains {
		s.drawChainDebug(screen, c, &opts)
	}
}

func (s *Scene) drawChainDebug(screen *ebiten.Image, c *Chain, opts *DebugOptions) {
	pts := make([]Vec2, 0, len(c.joints))
	for _, id := range c.joints {
		n := s.Joint(id)
		if n == nil || n.IsDisposed() {
			return
		}
		pts = append(pts, n.WorldPosition())
	}

	if opts.Bones {
		for i := 0; i < len(pts)-1; i++ {
			vector.StrokeLine(screen,
				float32(pts[i].X), float32(pts[i].Y),
				float32(pts[i+1].X), float32(pts[i+1].Y),
				1, opts.BoneColor, true)
		}
	}

	if opts.JointRadius > 0 {
		for _, p := range pts {
			vector.StrokeCircle(screen,
				float32(p.X), float32(p.Y), float32(opts.JointRadius),
				1, opts.JointColor, true)
		}
	}

	if opts.AngleLimits {
		for i, id := range c.joints {
			jc, ok := c.constraints[id]
			if !ok {
				continue
			}
			base := c.limitBaseAngle(i, pts)
			drawArc(screen, pts[i], opts.ArcRadius, base-jc.CW, base+jc.CCW, opts.LimitColor)
		}
	}
}

// limitBaseAngle returns the direction a joint's angle limit is measured
// from: the incoming bone for interior joints and the effector, or the
// rest-relative facing for the anchor (which has no incoming bone).
func (c *Chain) limitBaseAngle(i int, pts []Vec2) float64 {
	if i == 0 {
		id := c.joints[0]
		return c.restAngles[id] // anchor rotation delta folded in at solve time
	}
	return pts[i].Sub(pts[i-1]).NormalizeOr(defaultAxis).Angle()
}

// arcSegments is the flattening resolution for angle-limit arcs.
const arcSegments = 24

// drawArc strokes a circular arc plus the two radii bounding it, as a
// polyline. Good enough for a diagnostic overlay.
func drawArc(screen *ebiten.Image, center Vec2, radius, from, to float64, clr color.Color) {
	prev := center.Add(FromAngle(from).Scale(radius))
	vector.StrokeLine(screen,
		float32(center.X), float32(center.Y),
		float32(prev.X), float32(prev.Y), 1, clr, true)
	for i := 1; i <= arcSegments; i++ {
		a := from + (to-from)*float64(i)/arcSegments
		p := center.Add(FromAngle(a).Scale(radius))
		vector.StrokeLine(screen,
			float32(prev.X), float32(prev.Y),
			float32(p.X), float32(p.Y), 1, clr, true)
		prev = p
	}
	end := center.Add(FromAngle(to).Scale(radius))
	vector.StrokeLine(screen,
		float32(center.X), float32(center.Y),
		float32(end.X), float32(end.Y), 1, clr, true)
}

// DebugAngles reports a chain's per-joint solved vs rest rotations on
// stderr. Handy when tuning constraints.
func (c *Chain) DebugAngles(joints JointResolver) {
	for _, id := range c.joints {
		n := joints.Joint(id)
		if n == nil {
			continue
		}
		_, _ = fmt.Fprintf(os.Stderr, "[ik2d]   joint %d: rot %.3f rest %.3f delta %.3f\n",
			id, n.WorldRotation(), c.restRotations[id],
			wrapAngle(n.WorldRotation()-c.restRotations[id]))
	}
}

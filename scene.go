package ik2d

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene owns the node tree and the attached chains, and drives the per-tick
// order the solver depends on: propagate world transforms, capture rest
// poses for newly attached chains, then solve every chain with a resolvable
// target. Chains are processed strictly sequentially within a tick; the
// scene graph has no synchronization for shared joints.
type Scene struct {
	root   *Node
	chains []*Chain

	// id index, rebuilt during propagation so lookups always reflect the
	// current tree (nodes added, reparented, or disposed since last tick).
	index map[JointID]*Node

	debug bool
}

// NewScene creates a scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{
		root:  NewNode("root"),
		index: make(map[JointID]*Node),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Joint resolves a joint id to its node, or nil if the id is not in the
// tree as of the last propagation. Scene implements JointResolver.
func (s *Scene) Joint(id JointID) *Node {
	return s.index[id]
}

// AttachChain registers a chain with the scene. Its rest pose is captured
// on the next tick; until then it is not solved.
func (s *Scene) AttachChain(c *Chain) {
	s.chains = append(s.chains, c)
}

// DetachChain unregisters a chain. The joints themselves are untouched.
func (s *Scene) DetachChain(c *Chain) {
	for i, ch := range s.chains {
		if ch == c {
			s.chains = append(s.chains[:i], s.chains[i+1:]...)
			return
		}
	}
}

// Chains returns the attached chains. The returned slice MUST NOT be mutated.
func (s *Scene) Chains() []*Chain {
	return s.chains
}

// Update runs one tick using Ebitengine's tick rate for dt. Call from your
// game's Update, after any code that moves nodes and before Draw.
func (s *Scene) Update() {
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step runs one fixed-duration tick: propagation, then initialization and
// solving of every attached chain. dt only advances path targets; the
// solver itself is iteration-bounded, not time-bounded.
func (s *Scene) Step(dt float64) {
	s.Propagate()
	for _, c := range s.chains {
		s.SolveChain(c, dt)
	}
}

// Propagate refreshes every node's world transform from its local one and
// rebuilds the id index. Exported for callers that schedule solving
// themselves (e.g. the ecs bridge); Step calls it automatically.
func (s *Scene) Propagate() {
	clear(s.index)
	s.indexTree(s.root)
	updateWorldTransform(s.root, identityTransform, false)
}

func (s *Scene) indexTree(n *Node) {
	s.index[n.ID] = n
	for _, child := range n.children {
		s.indexTree(child)
	}
}

// SolveChain initializes c's rest pose if it hasn't been captured yet, then
// runs the solver once. Assumes Propagate already ran this tick. Returns
// what happened; SolveSkipped covers empty targets, unresolvable joints or
// follow entities, and inert chains.
func (s *Scene) SolveChain(c *Chain, dt float64) SolveResult {
	if c.state == chainUninitialized {
		if !c.initRestPose(s) {
			return SolveSkipped
		}
	}
	return c.solve(s, dt)
}

// SetDebugMode enables or disables per-tick diagnostics on stderr
// (skipped-chain reports and debug overlay logging).
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that chain
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

package ik2d

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — ik2d is single-threaded).
var nodeIDCounter uint32

func nextNodeID() JointID {
	nodeIDCounter++
	return JointID(nodeIDCounter)
}

// --- Node ---

// Node is the transform hierarchy element. A single flat struct is used for
// all nodes; joints, rig bodies, and plain groups differ only in how the
// caller wires them into chains.
type Node struct {
	// Identity
	ID   JointID
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local, relative to Parent)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64

	// Computed (updated during propagation, or eagerly by the world setters)
	worldTransform [6]float64
	transformDirty bool

	// Metadata
	UserData any

	// Internal
	disposed bool
}

// NewNode creates a node with identity scale and a fresh ID.
func NewNode(name string) *Node {
	n := &Node{
		ID:             nextNodeID(),
		Name:           name,
		ScaleX:         1,
		ScaleY:         1,
		transformDirty: true,
	}
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// The child's local transform is kept as-is, so its world transform moves
// with the new parent. Panics if child is nil or child is an ancestor of
// this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("ik2d: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("ik2d: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// AddChildInPlace reparents child under this node while preserving the
// child's current world transform, rederiving its local transform from the
// new parent. Both nodes' world transforms must be current (call after
// propagation, or on freshly world-set nodes). Used when assembling rigs
// from already-positioned joints.
func (n *Node) AddChildInPlace(child *Node) {
	pos := child.WorldPosition()
	rot := child.WorldRotation()
	n.AddChild(child)
	child.SetWorldPosition(pos)
	child.SetWorldRotation(rot)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("ik2d: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Chains referencing a disposed
// joint fail resolution and are skipped by the solver.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

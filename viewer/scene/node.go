package scene

import (
	"github.com/quillon/prism/viewer/math"
)

// NodeKind is the coarse classification of a scene node, assigned at
// creation time rather than inspected at runtime.
type NodeKind int

const (
	KindNode NodeKind = iota
	KindTransform
	KindMesh
	KindInstancedMesh
	KindAbstractMesh
)

func (k NodeKind) String() string {
	switch k {
	case KindTransform:
		return "TransformNode"
	case KindMesh:
		return "Mesh"
	case KindInstancedMesh:
		return "InstancedMesh"
	case KindAbstractMesh:
		return "AbstractMesh"
	default:
		return "Node"
	}
}

// Node is a single element of the scene graph.
type Node struct {
	ID        uint32
	Name      string
	Kind      NodeKind
	Transform *math.Transform
	Parent    *Node
	Children  []*Node

	// Visible controls whether the node renders; Enabled controls
	// whether it participates in the scene at all (framing included).
	Visible bool
	Enabled bool
}

func NewNode(alloc *IDAllocator, name string, kind NodeKind) *Node {
	return &Node{
		ID:        alloc.Next(),
		Name:      name,
		Kind:      kind,
		Transform: math.TransformCreate(),
		Visible:   true,
		Enabled:   true,
	}
}

// AddChild attaches child to n, re-parenting it away from any previous
// parent. The child's transform parent follows the node parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	child.Transform.Parent = n.Transform
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.Transform.Parent = nil
			return
		}
	}
}

// WorldMatrix recomputes and returns the node's world transformation.
func (n *Node) WorldMatrix() math.Mat4 {
	return n.Transform.WorldMatrix()
}

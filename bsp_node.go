package gobsp

import (
	"github.com/google/uuid"
)

// Node is a cell of the partition. It exclusively owns its Front and Back
// children. Nodes are mutated in place by a Divider and are never replaced,
// so a node's ID and ColorIndex stay valid across repeated divides.
type Node struct {
	ID         string
	Objects    Objects
	Hyperplane *Hyperplane
	Front      *Node
	Back       *Node

	// Center is the centroid of the objects the node was created with. It
	// is not updated by later pushes.
	Center Point3

	// Normal orients the node's own plane and, rotated, its children's.
	// It is zero for a root whose plane is picked from its objects.
	Normal Vector3

	ColorIndex int
	Leaf       bool
}

// NewNode creates a node whose hyperplane passes through the centroid of
// objects and faces along normal.
func NewNode(objects Objects, normal Vector3) (*Node, error) {
	center := objects.Centroid()
	plane, err := NewHyperplane(center, normal, "")
	if err != nil {
		return nil, err
	}
	return &Node{
		ID:         uuid.NewString(),
		Objects:    objects,
		Hyperplane: plane,
		Center:     center,
		Normal:     plane.Normal,
	}, nil
}

// NewRootNode creates a node without a hyperplane. The divider picks one
// from the objects, by default the first, so the order given here pins the
// first split.
func NewRootNode(objects ...*Segment) *Node {
	objs := make(Objects, 0, len(objects))
	objs = append(objs, objects...)
	return &Node{
		ID:      uuid.NewString(),
		Objects: objs,
		Center:  objs.Centroid(),
	}
}

// Push appends obj without redistributing it; divide again to do that.
func (n *Node) Push(obj *Segment) {
	n.Objects = append(n.Objects, obj)
}

func (n *Node) PushAll(objs Objects) {
	n.Objects = append(n.Objects, objs...)
}

// IsLeaf reports whether the last divide marked this node as a leaf.
func (n *Node) IsLeaf() bool {
	return n.Leaf
}

func (n *Node) HasChildren() bool {
	return n.Front != nil || n.Back != nil
}

// Children returns the existing children, front first.
func (n *Node) Children() []*Node {
	children := make([]*Node, 0, 2)
	if n.Front != nil {
		children = append(children, n.Front)
	}
	if n.Back != nil {
		children = append(children, n.Back)
	}
	return children
}

// Walk visits the node, then its front subtree, then its back subtree.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, level int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, level int) bool, level int) {
	if !fn(n, level) {
		return
	}
	if n.Front != nil {
		n.Front.walk(fn, level+1)
	}
	if n.Back != nil {
		n.Back.walk(fn, level+1)
	}
}

// WalkBreadthFirst visits the tree level by level, front before back.
func (n *Node) WalkBreadthFirst(fn func(node *Node)) {
	queue := []*Node{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		fn(node)
		queue = append(queue, node.Children()...)
	}
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the number of levels below n; a node without children has
// depth zero.
func (n *Node) Depth() int {
	depth := 0
	n.Walk(func(_ *Node, level int) bool {
		if level > depth {
			depth = level
		}
		return true
	})
	return depth
}

// AllObjects collects the objects of every node in walk order.
func (n *Node) AllObjects() Objects {
	var objs Objects
	n.Walk(func(node *Node, _ int) bool {
		objs = append(objs, node.Objects...)
		return true
	})
	return objs
}

// AssignColors numbers the nodes breadth first, wrapping at paletteSize, so
// neighbouring cells can be drawn in different colours.
func AssignColors(root *Node, paletteSize int) {
	if paletteSize <= 0 {
		paletteSize = 1
	}
	i := 0
	root.WalkBreadthFirst(func(node *Node) {
		node.ColorIndex = i % paletteSize
		i++
	})
}

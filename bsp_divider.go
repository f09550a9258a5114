package gobsp

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const (
	DefaultMaxObjectsPerLeaf = 5
	DefaultMaxRecursion      = 64

	// Unlimited is a divide depth that never runs out. Recursion is still
	// bounded by the divider's MaxRecursion.
	Unlimited = -1
)

// PivotFunc picks the index of the object whose center and normal seed the
// plane of a node that has none.
type PivotFunc func(objs Objects) int

// FirstObjectPivot picks the first inserted object.
func FirstObjectPivot(Objects) int {
	return 0
}

// Divider recursively partitions a tree of nodes in place.
type Divider struct {
	// A node holding fewer objects than this, and no children, is a leaf.
	MaxObjectsPerLeaf int

	// Half-width of the collinear band used when classifying objects.
	Epsilon float64

	Pivot PivotFunc

	// Hard bound on recursion levels below the node passed to Divide.
	MaxRecursion int
}

func NewDivider(maxObjectsPerLeaf int) *Divider {
	return &Divider{
		MaxObjectsPerLeaf: maxObjectsPerLeaf,
		Epsilon:           CollinearEpsilon,
		Pivot:             FirstObjectPivot,
		MaxRecursion:      DefaultMaxRecursion,
	}
}

// IsLeaf reports whether n has no children and fewer objects than the
// divider's threshold.
func (d *Divider) IsLeaf(n *Node) bool {
	return !n.HasChildren() && len(n.Objects) < d.maxObjects()
}

// Divide partitions node and its descendants. depth counts the levels that
// may still move objects into children: it is decremented only by a node
// that actually moved something, and recursion stops when it reaches zero.
// Calling Divide again deepens the existing tree instead of rebuilding it.
func (d *Divider) Divide(node *Node, depth int) error {
	return d.divide(node, depth, 0)
}

func (d *Divider) divide(node *Node, depth, level int) error {
	if d.IsLeaf(node) {
		node.Leaf = true
		return nil
	}
	node.Leaf = false

	if level >= d.maxRecursion() {
		logs.Warn(errors.New("divide recursion limit reached").
			WithTag("node", node.ID).
			WithTag("level", level).
			WithTag("objects", len(node.Objects)))
		return nil
	}

	if node.Hyperplane == nil {
		if len(node.Objects) == 0 {
			node.Leaf = true
			return nil
		}
		if err := d.selectHyperplane(node); err != nil {
			return err
		}
	}

	plane := node.Hyperplane
	var collinear, front, back Objects
	for _, obj := range node.Objects {
		switch side := ClassifySegment(plane, obj, d.Epsilon); side {
		case Front:
			front = append(front, obj)
		case Back:
			back = append(back, obj)
		case Collinear:
			collinear = append(collinear, obj)
		default:
			objectsSplitTotal.Inc()
			f, b, err := SplitObject(plane, obj, d.Epsilon)
			if err != nil {
				return err
			}
			if f != nil {
				front = append(front, f)
			}
			if b != nil {
				back = append(back, b)
			}
		}
	}
	node.Objects = collinear

	normal := node.Normal
	if normal == (Vector3{}) {
		normal = plane.Normal
	}

	if node.Front == nil {
		child, err := NewNode(front, normal.RotateY(math.Pi/2))
		if err != nil {
			return err
		}
		node.Front = child
	} else {
		node.Front.PushAll(front)
	}
	node.Front.Leaf = d.IsLeaf(node.Front)

	if node.Back == nil {
		child, err := NewNode(back, normal.RotateY(-math.Pi/2))
		if err != nil {
			return err
		}
		node.Back = child
	} else {
		node.Back.PushAll(back)
	}
	node.Back.Leaf = d.IsLeaf(node.Back)

	dividesTotal.Inc()
	objectsMovedTotal.WithLabelValues(Front.String()).Add(float64(len(front)))
	objectsMovedTotal.WithLabelValues(Back.String()).Add(float64(len(back)))

	if len(front) > 0 || len(back) > 0 {
		depth--
	}

	logs.WithTag("node", node.ID).
		WithTag("hyperplane", plane.Tag).
		WithTag("front", len(front)).
		WithTag("back", len(back)).
		WithTag("collinear", len(collinear)).
		WithTag("depth", depth).
		Debug("node divided")

	if depth == 0 {
		return nil
	}

	if err := d.divide(node.Front, depth, level+1); err != nil {
		return err
	}
	return d.divide(node.Back, depth, level+1)
}

func (d *Divider) selectHyperplane(node *Node) error {
	pivot := d.Pivot
	if pivot == nil {
		pivot = FirstObjectPivot
	}

	i := pivot(node.Objects)
	if i < 0 || i >= len(node.Objects) {
		i = 0
	}
	obj := node.Objects[i]

	plane, err := NewHyperplane(obj.Center, obj.Normal, obj.Tag+".hypp")
	if err != nil {
		return err
	}
	node.Hyperplane = plane
	return nil
}

func (d *Divider) maxObjects() int {
	if d.MaxObjectsPerLeaf < 1 {
		return 1
	}
	return d.MaxObjectsPerLeaf
}

func (d *Divider) maxRecursion() int {
	if d.MaxRecursion <= 0 {
		return DefaultMaxRecursion
	}
	return d.MaxRecursion
}

package gobsp

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
)

// AngleEpsilon is the angular slack, in radians, of field of view tests.
const AngleEpsilon = 1e-9

// Query answers read-only visibility questions about a tree.
//
// A node whose center fails a test is pruned together with its whole
// subtree, even if some descendant would pass on its own. This trades exact
// visibility for the usual BSP coherence assumption.
type Query struct {
	// Half-width of the collinear band of the eye plane.
	Epsilon float64
}

func NewQuery() *Query {
	return &Query{Epsilon: CollinearEpsilon}
}

// InFrontOf returns the nodes whose centers lie in front of the plane
// through eye facing dir, in walk order: node, front subtree, back subtree.
func (q *Query) InFrontOf(node *Node, eye Point3, dir Vector3) ([]*Node, error) {
	return q.InFrontOfDepth(node, eye, dir, 0)
}

// InFrontOfDepth is InFrontOf limited to maxDepth levels below node. A
// maxDepth of zero or less means no limit.
func (q *Query) InFrontOfDepth(node *Node, eye Point3, dir Vector3, maxDepth int) ([]*Node, error) {
	plane, err := NewHyperplane(eye, dir, "eye")
	if err != nil {
		return nil, err
	}

	cells := q.collect(node, maxDepth, func(n *Node) bool {
		return ClassifyPoint(plane, n.Center, q.Epsilon) == Front
	})

	queryNodes.WithLabelValues("in_front_of").Observe(float64(len(cells)))
	logs.WithTag("eye", eye).
		WithTag("dir", dir).
		WithTag("cells", len(cells)).
		Debug("in front of query")
	return cells, nil
}

// InFovOf is InFrontOf with the added requirement that the angle between
// dir and the direction from eye to a node's center is at most half of
// fovDegrees.
func (q *Query) InFovOf(node *Node, eye Point3, dir Vector3, fovDegrees float64) ([]*Node, error) {
	plane, err := NewHyperplane(eye, dir, "eye")
	if err != nil {
		return nil, err
	}
	halfFov := mgl64.DegToRad(fovDegrees) / 2

	cells := q.collect(node, 0, func(n *Node) bool {
		if ClassifyPoint(plane, n.Center, q.Epsilon) != Front {
			return false
		}
		angle, err := plane.Normal.AngleTo(n.Center.Sub(eye))
		if err != nil {
			return false
		}
		return angle <= halfFov+AngleEpsilon
	})

	queryNodes.WithLabelValues("in_fov_of").Observe(float64(len(cells)))
	logs.WithTag("eye", eye).
		WithTag("dir", dir).
		WithTag("fov", fovDegrees).
		WithTag("cells", len(cells)).
		Debug("in fov query")
	return cells, nil
}

func (q *Query) collect(node *Node, maxDepth int, visible func(*Node) bool) []*Node {
	var cells []*Node
	if node == nil {
		return cells
	}

	node.Walk(func(n *Node, level int) bool {
		if !visible(n) {
			return false
		}
		cells = append(cells, n)
		return maxDepth <= 0 || level < maxDepth
	})
	return cells
}

// VisibleObjects flattens the objects held by cells, in cell order.
func VisibleObjects(cells []*Node) Objects {
	var objs Objects
	for _, c := range cells {
		objs = append(objs, c.Objects...)
	}
	return objs
}

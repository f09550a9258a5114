package gobsp

import (
	"github.com/segmentio/encoding/json"
)

// NodeSnapshot is a plain copy of a subtree for debug output.
type NodeSnapshot struct {
	ID         string           `json:"id"`
	Center     Point3           `json:"center"`
	Hyperplane *Hyperplane      `json:"hyperplane,omitempty"`
	ColorIndex int              `json:"color_index"`
	Leaf       bool             `json:"leaf,omitempty"`
	Objects    []ObjectSnapshot `json:"objects,omitempty"`
	Front      *NodeSnapshot    `json:"front,omitempty"`
	Back       *NodeSnapshot    `json:"back,omitempty"`
}

type ObjectSnapshot struct {
	Tag  string `json:"tag"`
	Kind string `json:"kind"`
	P1   Point3 `json:"p1"`
	P2   Point3 `json:"p2"`
}

func Snapshot(n *Node) *NodeSnapshot {
	if n == nil {
		return nil
	}

	s := &NodeSnapshot{
		ID:         n.ID,
		Center:     n.Center,
		Hyperplane: n.Hyperplane,
		ColorIndex: n.ColorIndex,
		Leaf:       n.Leaf,
		Front:      Snapshot(n.Front),
		Back:       Snapshot(n.Back),
	}
	for _, obj := range n.Objects {
		s.Objects = append(s.Objects, ObjectSnapshot{
			Tag:  obj.Tag,
			Kind: obj.Kind.String(),
			P1:   obj.P1,
			P2:   obj.P2,
		})
	}
	return s
}

// Dump renders the tree below n as indented JSON.
func Dump(n *Node) ([]byte, error) {
	return json.MarshalIndent(Snapshot(n), "", "  ")
}

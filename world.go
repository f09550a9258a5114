package gobsp

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const DefaultPaletteSize = 8

// World owns a scene's partition and is what a host application drives:
// objects are added, the tree is split on user command and visible cells are
// queried every frame. It has no locking; hosts must serialise calls.
type World struct {
	Divider     *Divider
	Query       *Query
	PaletteSize int

	root   *Node
	splits int
}

func NewWorld(maxObjectsPerLeaf int) *World {
	return &World{
		Divider:     NewDivider(maxObjectsPerLeaf),
		Query:       NewQuery(),
		PaletteSize: DefaultPaletteSize,
		root:        NewRootNode(),
	}
}

func (w *World) Root() *Node {
	return w.root
}

// Splits returns how many split commands have been applied.
func (w *World) Splits() int {
	return w.splits
}

// Add pushes objects into the root. They are not distributed until the next
// split.
func (w *World) Add(objs ...*Segment) {
	w.root.PushAll(objs)
}

func (w *World) AddAll(objs Objects) {
	w.root.PushAll(objs)
}

// SplitOnce deepens the tree by one level and recolours it.
func (w *World) SplitOnce() error {
	return w.split(1)
}

// SplitFully divides until every branch ends in a leaf.
func (w *World) SplitFully() error {
	return w.split(Unlimited)
}

func (w *World) split(depth int) error {
	if err := w.Divider.Divide(w.root, depth); err != nil {
		return err
	}
	w.splits++
	AssignColors(w.root, w.PaletteSize)

	logs.WithTag("splits", w.splits).
		WithTag("nodes", w.root.Count()).
		WithTag("depth", w.root.Depth()).
		Info("bsp split")
	return nil
}

// Visible returns the cells inside the camera's field of view.
func (w *World) Visible(cam *Camera) ([]*Node, error) {
	return w.Query.InFovOf(w.root, cam.Position, cam.Direction(), cam.FOV)
}

// InFront returns the cells in front of the camera regardless of its FOV.
func (w *World) InFront(cam *Camera) ([]*Node, error) {
	return w.Query.InFrontOf(w.root, cam.Position, cam.Direction())
}

// VisibleObjects returns the objects of the visible cells sorted far to
// near, ready for a painter's algorithm.
func (w *World) VisibleObjects(cam *Camera) (Objects, error) {
	cells, err := w.Visible(cam)
	if err != nil {
		return nil, err
	}
	objs := VisibleObjects(cells)
	objs.SortByDistance(cam.Position)
	return objs, nil
}

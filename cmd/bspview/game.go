package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/gobsp"
)

const (
	moveSpeed = 0.3
	turnSpeed = 0.03
)

// Game is a top-down view of a world: X runs right, Z runs down the screen.
type Game struct {
	world   *gobsp.World
	conf    config
	camera  *gobsp.Camera
	visible map[string]bool
	cells   int
	err     error
}

func NewGame(world *gobsp.World, conf config) *Game {
	return &Game{
		world:   world,
		conf:    conf,
		camera:  newCamera(conf),
		visible: make(map[string]bool),
	}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.err = g.world.SplitOnce()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.err = g.world.SplitFully()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.camera = newCamera(g.conf)
	}
	if g.err != nil {
		return g.err
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Move(moveSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Move(-moveSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.AddAngle(turnSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.AddAngle(-turnSpeed, 0)
	}

	cells, err := g.world.Visible(g.camera)
	if err != nil {
		return err
	}
	clear(g.visible)
	for _, c := range cells {
		g.visible[c.ID] = true
	}
	g.cells = len(cells)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	v := newView(w, h)

	g.world.Root().Walk(func(node *gobsp.Node, _ int) bool {
		lit := g.visible[node.ID]
		if node.Hyperplane != nil && node.HasChildren() {
			v.drawHyperplane(screen, node.Hyperplane, cellColor(node.ColorIndex, false))
		}
		for _, obj := range node.Objects {
			v.drawObject(screen, obj, cellColor(node.ColorIndex, lit))
		}
		return true
	})

	v.drawCamera(screen, g.camera)

	msg := fmt.Sprintf("B: split once  F: split fully  R: reset camera  arrows: move\nsplits: %d  nodes: %d  depth: %d  visible cells: %d  fps: %0.1f",
		g.world.Splits(), g.world.Root().Count(), g.world.Root().Depth(), g.cells, ebiten.ActualFPS())
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// view maps world X/Z onto screen pixels around a fixed focus point.
type view struct {
	cx, cy float32
	focus  gobsp.Point3
	scale  float32
}

const pixelsPerUnit = 12

var viewFocus = gobsp.NewPoint3(5, 0, 12)

func newView(w, h int) view {
	return view{
		cx:    float32(w) / 2,
		cy:    float32(h) / 2,
		focus: viewFocus,
		scale: pixelsPerUnit,
	}
}

func (v view) project(p gobsp.Point3) (float32, float32) {
	return v.cx + float32(p.X-v.focus.X)*v.scale, v.cy + float32(p.Z-v.focus.Z)*v.scale
}

func (v view) drawObject(screen *ebiten.Image, obj *gobsp.Segment, clr rgba) {
	if !obj.IsMarker() {
		x1, y1 := v.project(obj.P1)
		x2, y2 := v.project(obj.P2)
		DrawLine(screen, x1, y1, x2, y2, 2, clr)
		return
	}

	x, y := v.project(obj.Center)
	r := float32(0.3) * v.scale
	if obj.Kind == gobsp.KindCloud {
		r *= 2
	}
	fillGlyph(screen, glyph(x, y, r, 8), clr)
}

func (v view) drawHyperplane(screen *ebiten.Image, h *gobsp.Hyperplane, clr rgba) {
	along := gobsp.NewVector3(-h.Normal.Z, 0, h.Normal.X)
	if along.Length() == 0 {
		return
	}
	const halfLength = 3
	x1, y1 := v.project(h.Point.Sub(along.Scale(halfLength)))
	x2, y2 := v.project(h.Point.Add(along.Scale(halfLength)))
	DrawLine(screen, x1, y1, x2, y2, 1, clr.withAlpha(120))

	nx, ny := v.project(h.Point.Add(h.Normal))
	px, py := v.project(h.Point)
	DrawLine(screen, px, py, nx, ny, 1, clr.withAlpha(200))
}

func (v view) drawCamera(screen *ebiten.Image, cam *gobsp.Camera) {
	x, y := v.project(cam.Position)
	fillGlyph(screen, glyph(x, y, 5, 6), white)

	const rayLength = 40
	half := cam.FOV / 2 * math.Pi / 180
	for _, a := range []float64{-half, half} {
		dir := cam.Forward().RotateY(a)
		ex, ey := v.project(cam.Position.Add(dir.Scale(rayLength)))
		DrawLine(screen, x, y, ex, ey, 1, white.withAlpha(160))
	}
}

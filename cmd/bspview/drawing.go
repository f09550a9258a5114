package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

type rgba color.RGBA

func (c rgba) withAlpha(a uint8) rgba {
	c.A = a
	return c
}

var (
	white = rgba{R: 255, G: 255, B: 255, A: 255}

	palette = []rgba{
		{R: 230, G: 80, B: 70, A: 255},
		{R: 90, G: 190, B: 90, A: 255},
		{R: 80, G: 130, B: 230, A: 255},
		{R: 230, G: 200, B: 70, A: 255},
		{R: 190, G: 90, B: 210, A: 255},
		{R: 70, G: 200, B: 200, A: 255},
		{R: 240, G: 140, B: 60, A: 255},
		{R: 160, G: 160, B: 160, A: 255},
	}

	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// cellColor is the palette colour of a cell, dimmed unless the cell is lit.
func cellColor(index int, lit bool) rgba {
	c := palette[clamp(index, 0, math.MaxInt)%len(palette)]
	if lit {
		return c
	}
	const dim = 90
	c.R = uint8(clamp(int(c.R)-dim, 20, 255))
	c.G = uint8(clamp(int(c.G)-dim, 20, 255))
	c.B = uint8(clamp(int(c.B)-dim, 20, 255))
	return c
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// glyph is the outline of a regular polygon drawn for markers and the camera.
func glyph(cx, cy, r float32, sides int) *vector.Path {
	var path vector.Path
	for i := 0; i < sides; i++ {
		a := 2 * math.Pi * float64(i) / float64(sides)
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			path.MoveTo(x, y)
			continue
		}
		path.LineTo(x, y)
	}
	path.Close()
	return &path
}

func fillGlyph(screen *ebiten.Image, path *vector.Path, clr rgba) {
	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	if len(indices) == 0 {
		return
	}

	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(clr.R) / 255
		vertices[i].ColorG = float32(clr.G) / 255
		vertices[i].ColorB = float32(clr.B) / 255
		vertices[i].ColorA = float32(clr.A) / 255
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.NonZero
	screen.DrawTriangles(vertices, indices, whiteSub, op)
}

func DrawLine(screen *ebiten.Image, x1, y1, x2, y2, width float32, clr rgba) {
	vector.StrokeLine(screen, x1, y1, x2, y2, width, color.RGBA(clr), true)
}

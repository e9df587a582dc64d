// go-qrcode
// Copyright 2014 Tom Harwood

package style

import (
	"image/color"

	"github.com/weilsonwonder/go-qrstyle/effect"
)

// PaintOp paints one shape. X and Y locate the top left module of the
// operation's box in canvas module coordinates, margin included.
type PaintOp struct {
	X, Y int

	// Span is the width and height of the box in modules.
	Span int

	Shape Shape
	Fill  color.NRGBA

	// Rotation in degrees, clockwise about the center of the box.
	Rotation float64
}

// PaintPlan is the resolved drawing of one symbol. It is rebuilt for every
// render and never stored.
type PaintPlan struct {
	Ops []PaintOp

	// SymbolSize is the symbol width in modules, excluding the margin.
	SymbolSize int
	Margin     Margin

	// Width and Height are the canvas size in modules.
	Width, Height int

	// Scale is the size of a module in pixels.
	Scale int

	// Dark and Light are the effective colors after inversion.
	Dark, Light color.NRGBA

	// Background is the backgroundImage setting: empty, a color or an image
	// reference.
	Background string

	// Rotate is the clockwise rotation of the finished canvas in degrees.
	Rotate int

	Effect effect.Config
	Seed   int64
}

// PixelSize returns the canvas size in pixels before rotation.
func (p *PaintPlan) PixelSize() (width, height int) {
	return p.Width * p.Scale, p.Height * p.Scale
}

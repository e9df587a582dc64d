// go-qrcode
// Copyright 2014 Tom Harwood

package style

// Shape is the geometry of a paint operation, in module units relative to
// the operation's Span x Span box. The set of shapes is closed: renderers
// switch over the concrete types below.
type Shape interface {
	isShape()
}

// Rect fills the box, shrunk by Inset on every side.
type Rect struct {
	Inset float64
}

// RoundedRect fills the box with per-corner radii.
type RoundedRect struct {
	// Radii in clockwise order from the top left corner.
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// Circle is a disc centered in the box.
type Circle struct {
	Radius float64
}

// Ring is an annulus centered in the box.
type Ring struct {
	Outer, Inner float64
}

// Plus is a cross centered in the box with arms of width Arm.
type Plus struct {
	Arm float64
}

// Octagon is the box with its corners cut off by Cut.
type Octagon struct {
	Cut float64
}

// OctagonRing is an Octagon outline of thickness Width.
type OctagonRing struct {
	Cut, Width float64
}

// SquareRing is a square outline of thickness Width whose outer corners are
// rounded by Radius.
type SquareRing struct {
	Width, Radius float64
}

func (Rect) isShape()        {}
func (RoundedRect) isShape() {}
func (Circle) isShape()      {}
func (Ring) isShape()        {}
func (Plus) isShape()        {}
func (Octagon) isShape()     {}
func (OctagonRing) isShape() {}
func (SquareRing) isShape()  {}

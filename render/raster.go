// go-qrcode
// Copyright 2014 Tom Harwood

package render

import (
	"context"
	"image"
	"image/draw"
	"log"
	"math"
	"runtime"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/weilsonwonder/go-qrstyle/style"
)

// bandHeight is the height in pixels of the horizontal strips drawn in
// parallel.
const bandHeight = 64

// drawOps draws ops onto canvas. The canvas is split into horizontal bands
// drawn concurrently; each band only ever writes its own rows.
func drawOps(ctx context.Context, canvas *image.NRGBA, ops []style.PaintOp, scale float64) error {
	bounds := canvas.Bounds()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for y := bounds.Min.Y; y < bounds.Max.Y; y += bandHeight {
		band := image.Rect(bounds.Min.X, y, bounds.Max.X, min(y+bandHeight, bounds.Max.Y))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			drawBand(canvas, band, ops, scale)
			return nil
		})
	}

	return g.Wait()
}

// drawBand draws the ops intersecting band. The band is copied into its own
// buffer, drawn, and copied back. Each op is rasterized over its own box only.
func drawBand(canvas *image.NRGBA, band image.Rectangle, ops []style.PaintOp, scale float64) {
	w, h := band.Dx(), band.Dy()

	buf := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(buf, buf.Bounds(), canvas, band.Min, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, buf, buf.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)

	for _, op := range ops {
		box := opBounds(op, scale).Intersect(band)
		if box.Empty() {
			continue
		}

		filler.SetBounds(box.Dx(), box.Dy())
		scanner.Dest = buf.SubImage(box.Sub(band.Min)).(*image.NRGBA)
		filler.SetColor(op.Fill)

		p := newPen(filler, op, scale, float64(box.Min.X), float64(box.Min.Y))
		p.shape(op.Shape, float64(op.Span))

		filler.Draw()
	}

	draw.Draw(canvas, band, buf, image.Point{}, draw.Src)
}

// opBounds returns the pixels the op may touch. Rotated ops may reach past
// their box, up to its circumscribed square.
func opBounds(op style.PaintOp, scale float64) image.Rectangle {
	x0, y0 := float64(op.X)*scale, float64(op.Y)*scale
	size := float64(op.Span) * scale

	grow := 1.0
	if op.Rotation != 0 {
		grow += size * (math.Sqrt2 - 1) / 2
	}

	return image.Rect(
		int(math.Floor(x0-grow)), int(math.Floor(y0-grow)),
		int(math.Ceil(x0+size+grow)), int(math.Ceil(y0+size+grow)),
	)
}

// pen emits paths in module units relative to an op's box.
type pen struct {
	a rasterx.Adder

	// Pixel position of the box origin and the size of a module.
	ox, oy, unit float64

	rotated          bool
	sin, cos, cx, cy float64
}

func newPen(a rasterx.Adder, op style.PaintOp, scale, dx, dy float64) *pen {
	p := &pen{
		a:    a,
		ox:   float64(op.X)*scale - dx,
		oy:   float64(op.Y)*scale - dy,
		unit: scale,
	}

	if op.Rotation != 0 {
		rad := op.Rotation * math.Pi / 180
		half := float64(op.Span) * scale / 2

		p.rotated = true
		p.sin, p.cos = math.Sincos(rad)
		p.cx, p.cy = p.ox+half, p.oy+half
	}

	return p
}

func (p *pen) pt(x, y float64) fixed.Point26_6 {
	px, py := p.ox+x*p.unit, p.oy+y*p.unit

	if p.rotated {
		dx, dy := px-p.cx, py-p.cy
		px = p.cx + dx*p.cos - dy*p.sin
		py = p.cy + dx*p.sin + dy*p.cos
	}

	return rasterx.ToFixedP(px, py)
}

// Paths are filled with the non-zero rule. Holes are cut by tracing the
// inner outline counter-clockwise.
const (
	cw  = 1
	ccw = -1
)

// polygon adds a closed outline through points given as x, y pairs.
func (p *pen) polygon(xy ...float64) {
	p.a.Start(p.pt(xy[0], xy[1]))
	for i := 2; i < len(xy); i += 2 {
		p.a.Line(p.pt(xy[i], xy[i+1]))
	}
	p.a.Stop(true)
}

// reversed returns the x, y pairs of xy in reverse order.
func reversed(xy []float64) []float64 {
	out := make([]float64, 0, len(xy))
	for i := len(xy) - 2; i >= 0; i -= 2 {
		out = append(out, xy[i], xy[i+1])
	}

	return out
}

// arcKappa places the control points of a cubic quarter circle.
var arcKappa = 4 * (math.Sqrt2 - 1) / 3

// quarter continues the current path with a quarter circle of radius r
// around (cx, cy), starting at angle a (a multiple of 90 degrees, clockwise
// in screen space) and turning by 90 degrees in direction dir.
func (p *pen) quarter(cx, cy, r float64, a, dir int) {
	if r == 0 {
		p.a.Line(p.pt(cx, cy))
		return
	}

	s0, c0 := math.Sincos(float64(a) * math.Pi / 180)
	s1, c1 := math.Sincos(float64(a+90*dir) * math.Pi / 180)

	x0, y0 := cx+r*c0, cy+r*s0
	x1, y1 := cx+r*c1, cy+r*s1
	k := arcKappa * r * float64(dir)

	p.a.Line(p.pt(x0, y0))
	p.a.CubeBezier(
		p.pt(x0-k*s0, y0+k*c0),
		p.pt(x1+k*s1, y1-k*c1),
		p.pt(x1, y1),
	)
}

// roundedRect adds a box from (x0, y0) to (x1, y1) with per-corner radii,
// traced in direction dir.
func (p *pen) roundedRect(x0, y0, x1, y1, tl, tr, br, bl float64, dir int) {
	limit := math.Min(x1-x0, y1-y0) / 2
	clampR := func(r float64) float64 {
		return math.Max(0, math.Min(r, limit))
	}
	tl, tr, br, bl = clampR(tl), clampR(tr), clampR(br), clampR(bl)

	if dir == cw {
		p.a.Start(p.pt(x0+tl, y0))
		p.quarter(x1-tr, y0+tr, tr, 270, cw)
		p.quarter(x1-br, y1-br, br, 0, cw)
		p.quarter(x0+bl, y1-bl, bl, 90, cw)
		p.quarter(x0+tl, y0+tl, tl, 180, cw)
	} else {
		p.a.Start(p.pt(x1-tr, y0))
		p.quarter(x0+tl, y0+tl, tl, 270, ccw)
		p.quarter(x0+bl, y1-bl, bl, 180, ccw)
		p.quarter(x1-br, y1-br, br, 90, ccw)
		p.quarter(x1-tr, y0+tr, tr, 0, ccw)
	}
	p.a.Stop(true)
}

func (p *pen) circle(cx, cy, r float64, dir int) {
	if r <= 0 {
		return
	}

	p.a.Start(p.pt(cx+r, cy))
	for i, a := 0, 0; i < 4; i, a = i+1, a+90*dir {
		p.quarter(cx, cy, r, a, dir)
	}
	p.a.Stop(true)
}

func (p *pen) octagon(x0, y0, size, cut float64, dir int) {
	cut = math.Max(0, math.Min(cut, size/2))
	x1, y1 := x0+size, y0+size

	xy := []float64{
		x0 + cut, y0, x1 - cut, y0,
		x1, y0 + cut, x1, y1 - cut,
		x1 - cut, y1, x0 + cut, y1,
		x0, y1 - cut, x0, y0 + cut,
	}
	if dir == ccw {
		xy = reversed(xy)
	}

	p.polygon(xy...)
}

// shape adds the outline of s in a span x span box.
func (p *pen) shape(s style.Shape, span float64) {
	mid := span / 2

	switch s := s.(type) {
	case style.Rect:
		in := math.Min(s.Inset, mid)
		p.polygon(in, in, span-in, in, span-in, span-in, in, span-in)

	case style.RoundedRect:
		p.roundedRect(0, 0, span, span, s.TopLeft, s.TopRight, s.BottomRight, s.BottomLeft, cw)

	case style.Circle:
		p.circle(mid, mid, s.Radius, cw)

	case style.Ring:
		p.circle(mid, mid, s.Outer, cw)
		p.circle(mid, mid, s.Inner, ccw)

	case style.Plus:
		lo, hi := mid-s.Arm/2, mid+s.Arm/2
		p.polygon(
			lo, 0, hi, 0, hi, lo, span, lo,
			span, hi, hi, hi, hi, span, lo, span,
			lo, hi, 0, hi, 0, lo, lo, lo,
		)

	case style.Octagon:
		p.octagon(0, 0, span, s.Cut, cw)

	case style.OctagonRing:
		p.octagon(0, 0, span, s.Cut, cw)
		// The inner outline is parallel to the outer one.
		inner := s.Cut - s.Width*(2-math.Sqrt2)
		p.octagon(s.Width, s.Width, span-2*s.Width, inner, ccw)

	case style.SquareRing:
		r := s.Radius
		p.roundedRect(0, 0, span, span, r, r, r, r, cw)
		in := math.Max(0, r-s.Width)
		p.roundedRect(s.Width, s.Width, span-s.Width, span-s.Width, in, in, in, in, ccw)

	default:
		log.Panicf("unknown shape %T", s)
	}
}

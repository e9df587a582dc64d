// go-qrcode
// Copyright 2014 Tom Harwood

package style

import (
	"image"
	"image/color"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	qrcode "github.com/weilsonwonder/go-qrstyle"
)

// Resolve maps every module of m to paint operations according to cfg.
//
// Rules are applied per module in priority order: the render points filter,
// position markers (with per-marker overrides), alignment patterns, margin
// noise, and finally the pixel style for every other dark module. Colors are
// swapped first when cfg.Invert is set.
//
// Resolve is a pure function of its inputs. Rows are resolved concurrently
// and concatenated in row order.
func Resolve(m *qrcode.SymbolMatrix, cfg Config) (*PaintPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dark, light, err := cfg.Colors()
	if err != nil {
		return nil, err
	}

	n := m.Size()
	plan := &PaintPlan{
		SymbolSize: n,
		Margin:     cfg.Margin,
		Width:      n + cfg.Margin.Left + cfg.Margin.Right,
		Height:     n + cfg.Margin.Top + cfg.Margin.Bottom,
		Scale:      cfg.Scale,
		Dark:       dark,
		Light:      light,
		Background: cfg.BackgroundImage,
		Rotate:     cfg.Rotate,
		Effect:     cfg.Config,
		Seed:       cfg.Seed,
	}

	r := &resolver{
		m:       m,
		cfg:     cfg,
		dark:    dark,
		light:   light,
		n:       n,
		origins: m.MarkerOrigins(),
		centers: m.AlignmentCenters(),
	}

	for i := range r.markers {
		r.markers[i] = cfg.resolveMarker(qrcode.MarkerIndex(i))
	}

	if cfg.Invert {
		// Light modules are painted explicitly so the symbol stays readable
		// over a background image.
		plan.Ops = append(plan.Ops, PaintOp{
			X:     cfg.Margin.Left,
			Y:     cfg.Margin.Top,
			Span:  n,
			Shape: Rect{},
			Fill:  light,
		})
	}

	rows := make([][]PaintOp, plan.Height)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for cy := 0; cy < plan.Height; cy++ {
		g.Go(func() error {
			rows[cy] = r.resolveRow(cy, plan.Width)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range rows {
		plan.Ops = append(plan.Ops, row...)
	}

	return plan, nil
}

// resolvedMarker is the resolved style of one position marker.
type resolvedMarker struct {
	// pixel is the glyph style of pixel-aware marker parts.
	pixel PixelStyle
	shape MarkerShape
	inner InnerShape
}

// innerOctagon is the inner shape "auto" resolves to for octagon markers.
const innerOctagon InnerShape = "octagon"

// resolveMarker merges the override for marker i with the global settings.
func (c Config) resolveMarker(i qrcode.MarkerIndex) resolvedMarker {
	s := resolvedMarker{
		pixel: c.MarkerStyle,
		shape: c.MarkerShape,
		inner: c.MarkerInnerShape,
	}

	if o := c.Markers[i]; o != nil {
		if o.MarkerStyle != "" {
			s.pixel = o.MarkerStyle
		}
		if o.MarkerShape != "" {
			s.shape = o.MarkerShape
		}
		if o.MarkerInnerShape != "" {
			s.inner = o.MarkerInnerShape
		}
	}

	if s.pixel == MarkerStyleAuto {
		s.pixel = c.PixelStyle
	}

	if s.inner == InnerAuto {
		switch s.shape {
		case MarkerCircle:
			s.inner = InnerCircle
		case MarkerOctagon:
			s.inner = innerOctagon
		default:
			s.inner = InnerSquare
		}
	}

	return s
}

type resolver struct {
	m     *qrcode.SymbolMatrix
	cfg   Config
	dark  color.NRGBA
	light color.NRGBA
	n     int

	markers [3]resolvedMarker
	origins [3]image.Point
	centers []image.Point
}

func (r *resolver) resolveRow(cy int, width int) []PaintOp {
	var ops []PaintOp

	y := cy - r.cfg.Margin.Top
	for cx := 0; cx < width; cx++ {
		x := cx - r.cfg.Margin.Left

		if x < 0 || y < 0 || x >= r.n || y >= r.n {
			ops = r.marginCell(ops, x, y)
			continue
		}

		cell := r.m.At(x, y)
		if !r.cfg.RenderPointsType.includes(cell.Role) {
			continue
		}

		switch cell.Role {
		case qrcode.FinderMarker, qrcode.Separator:
			ops = r.markerCell(ops, x, y, cell)
		case qrcode.Alignment:
			ops = r.subCell(ops, x, y, cell)
		default:
			ops = r.pixelCell(ops, x, y, cell)
		}
	}

	return ops
}

// op returns a paint operation at symbol coordinate (x, y).
func (r *resolver) op(x, y, span int, shape Shape, fill color.NRGBA) PaintOp {
	return PaintOp{
		X:     x + r.cfg.Margin.Left,
		Y:     y + r.cfg.Margin.Top,
		Span:  span,
		Shape: shape,
		Fill:  fill,
	}
}

// member reports whether a neighbouring module is drawn as part of the same
// group of glyphs.
type member func(dx, dy int) bool

// glyph returns the single module shape for style. Neighbour membership
// decides which corners of connected styles are rounded.
func (r *resolver) glyph(style PixelStyle, x, y int, salt uint64, in member) Shape {
	const full = 0.5

	switch style {
	case PixelRounded:
		return RoundedRect{
			TopLeft:     radiusIf(!in(-1, 0) && !in(0, -1), full),
			TopRight:    radiusIf(!in(1, 0) && !in(0, -1), full),
			BottomRight: radiusIf(!in(1, 0) && !in(0, 1), full),
			BottomLeft:  radiusIf(!in(-1, 0) && !in(0, 1), full),
		}
	case PixelDot:
		return Circle{Radius: 0.45}
	case PixelSquircle:
		return RoundedRect{TopLeft: 0.3, TopRight: 0.3, BottomRight: 0.3, BottomLeft: 0.3}
	case PixelRow:
		left, right := radiusIf(!in(-1, 0), full), radiusIf(!in(1, 0), full)
		return RoundedRect{TopLeft: left, TopRight: right, BottomRight: right, BottomLeft: left}
	case PixelColumn:
		top, bottom := radiusIf(!in(0, -1), full), radiusIf(!in(0, 1), full)
		return RoundedRect{TopLeft: top, TopRight: top, BottomRight: bottom, BottomLeft: bottom}
	case PixelPlus:
		return Plus{Arm: 0.5}
	case PixelRandom:
		return r.glyph(randomGlyphs[pick(r.cfg.Seed, x, y, salt, len(randomGlyphs))], x, y, salt, in)
	}

	return Rect{}
}

// randomGlyphs are the styles PixelRandom chooses from.
var randomGlyphs = [...]PixelStyle{PixelSquare, PixelDot, PixelSquircle}

// markerGlyph is glyph for finder and alignment modules. Their modules must
// touch so that a scan line through the pattern sees unbroken runs, so dots
// are drawn as rounded modules.
func (r *resolver) markerGlyph(style PixelStyle, x, y int, salt uint64, in member) Shape {
	if style == PixelRandom {
		style = randomGlyphs[pick(r.cfg.Seed, x, y, salt, len(randomGlyphs))]
	}

	if style == PixelDot {
		style = PixelRounded
	}

	return r.glyph(style, x, y, salt, in)
}

func radiusIf(cond bool, radius float64) float64 {
	if cond {
		return radius
	}

	return 0
}

// pixelCell draws ordinary modules with the global pixel style.
func (r *resolver) pixelCell(ops []PaintOp, x, y int, cell qrcode.Cell) []PaintOp {
	if !cell.Dark {
		return ops
	}

	in := func(dx, dy int) bool {
		c := r.m.At(x+dx, y+dy)
		if !c.Dark {
			return false
		}

		switch c.Role {
		case qrcode.Data, qrcode.Timing, qrcode.FormatInfo, qrcode.VersionInfo:
			return true
		}

		return false
	}

	return append(ops, r.op(x, y, 1, r.glyph(r.cfg.PixelStyle, x, y, saltPixel, in), r.dark))
}

// Local positions within a 7x7 finder pattern.
func onFinderRing(lx, ly int) bool {
	return lx >= 0 && ly >= 0 && lx <= 6 && ly <= 6 && (lx == 0 || ly == 0 || lx == 6 || ly == 6)
}

func inFinderCenter(lx, ly int) bool {
	return lx >= 2 && ly >= 2 && lx <= 4 && ly <= 4
}

// markerCell draws the finder pattern modules of one position marker. The
// separator and the light ring between the outer ring and the center are
// left unpainted.
func (r *resolver) markerCell(ops []PaintOp, x, y int, cell qrcode.Cell) []PaintOp {
	if cell.Role == qrcode.Separator {
		return ops
	}

	mk := r.markers[cell.Marker]
	origin := r.origins[cell.Marker]
	lx, ly := x-origin.X, y-origin.Y

	switch {
	case onFinderRing(lx, ly):
		return r.outerCell(ops, mk, x, y, lx, ly)
	case inFinderCenter(lx, ly):
		return r.innerCell(ops, mk, x, y, lx-2, ly-2)
	}

	return ops
}

// outerRingMember reports whether the ring module at local (lx, ly) is drawn
// by the pixel-aware shape.
func outerRingMember(shape MarkerShape, lx, ly int) bool {
	if !onFinderRing(lx, ly) {
		return false
	}

	corner := (lx == 0 || lx == 6) && (ly == 0 || ly == 6)

	switch shape {
	case MarkerPlus:
		return !corner
	case MarkerTinyPlus:
		return (lx >= 2 && lx <= 4) || (ly >= 2 && ly <= 4)
	}

	return true
}

// boxRadius is the corner radius of a box marker drawn in the pixel style.
func boxRadius(style PixelStyle) float64 {
	switch style {
	case PixelSquare:
		return 0
	case PixelSquircle:
		return 0.6
	}

	return 1
}

func (r *resolver) outerCell(ops []PaintOp, mk resolvedMarker, x, y, lx, ly int) []PaintOp {
	atOrigin := lx == 0 && ly == 0

	switch mk.shape {
	case MarkerBox:
		if atOrigin {
			ops = append(ops, r.op(x, y, 7, SquareRing{Width: 1, Radius: boxRadius(mk.pixel)}, r.dark))
		}
		return ops
	case MarkerCircle:
		if atOrigin {
			ops = append(ops, r.op(x, y, 7, Ring{Outer: 3.5, Inner: 2.5}, r.dark))
		}
		return ops
	case MarkerOctagon:
		if atOrigin {
			ops = append(ops, r.op(x, y, 7, OctagonRing{Cut: 2, Width: 1}, r.dark))
		}
		return ops
	}

	if !outerRingMember(mk.shape, lx, ly) {
		// Plus shapes keep a dot in each corner. Finder detection checks
		// the diagonal through the marker too.
		if (lx == 0 || lx == 6) && (ly == 0 || ly == 6) {
			ops = append(ops, r.op(x, y, 1, Circle{Radius: 0.5}, r.dark))
		}
		return ops
	}

	in := func(dx, dy int) bool {
		return outerRingMember(mk.shape, lx+dx, ly+dy)
	}

	pixel := mk.pixel
	if mk.shape == MarkerRandom {
		pixel = PixelRandom
	}

	return append(ops, r.op(x, y, 1, r.markerGlyph(pixel, x, y, saltMarker, in), r.dark))
}

// diamondInset sizes the 45 degree square of the diamond center. Its tips
// reach 0.32 modules past the 3x3 center so the run along the diagonal stays
// within finder proportions.
var diamondInset = (3 - 1.82*math.Sqrt2) / 2

func (r *resolver) innerCell(ops []PaintOp, mk resolvedMarker, x, y, ix, iy int) []PaintOp {
	atOrigin := ix == 0 && iy == 0

	switch mk.inner {
	case InnerCircle:
		if atOrigin {
			ops = append(ops, r.op(x, y, 3, Circle{Radius: 1.5}, r.dark))
		}
		return ops
	case InnerDiamond:
		if atOrigin {
			op := r.op(x, y, 3, Rect{Inset: diamondInset}, r.dark)
			op.Rotation = 45
			ops = append(ops, op)
		}
		return ops
	case InnerEye:
		if atOrigin {
			ops = append(ops, r.op(x, y, 3, RoundedRect{TopLeft: 1.2, BottomRight: 1.2}, r.dark))
		}
		return ops
	case innerOctagon:
		if atOrigin {
			ops = append(ops, r.op(x, y, 3, Octagon{Cut: 0.9}, r.dark))
		}
		return ops
	}

	innerMember := func(ix, iy int) bool {
		if ix < 0 || iy < 0 || ix > 2 || iy > 2 {
			return false
		}

		return mk.inner != InnerPlus || ix == 1 || iy == 1
	}

	if !innerMember(ix, iy) {
		// The plus fills its corners with a rounded outer edge, which keeps
		// the diagonal through the center dark.
		const rr = 0.5
		corner := RoundedRect{
			TopLeft:     radiusIf(ix == 0 && iy == 0, rr),
			TopRight:    radiusIf(ix == 2 && iy == 0, rr),
			BottomRight: radiusIf(ix == 2 && iy == 2, rr),
			BottomLeft:  radiusIf(ix == 0 && iy == 2, rr),
		}
		return append(ops, r.op(x, y, 1, corner, r.dark))
	}

	in := func(dx, dy int) bool {
		return innerMember(ix+dx, iy+dy)
	}

	return append(ops, r.op(x, y, 1, r.markerGlyph(mk.pixel, x, y, saltMarker, in), r.dark))
}

// alignmentOrigin returns the top left module of the alignment pattern
// covering (x, y).
func (r *resolver) alignmentOrigin(x, y int) (image.Point, bool) {
	for _, c := range r.centers {
		if x >= c.X-2 && x <= c.X+2 && y >= c.Y-2 && y <= c.Y+2 {
			return image.Pt(c.X-2, c.Y-2), true
		}
	}

	return image.Point{}, false
}

// subCell draws alignment pattern modules with the sub marker shape.
func (r *resolver) subCell(ops []PaintOp, x, y int, cell qrcode.Cell) []PaintOp {
	origin, ok := r.alignmentOrigin(x, y)
	if !ok {
		return r.pixelCell(ops, x, y, cell)
	}

	lx, ly := x-origin.X, y-origin.Y
	atOrigin := lx == 0 && ly == 0
	atCenter := lx == 2 && ly == 2

	switch r.cfg.MarkerSub {
	case SubCircle:
		switch {
		case atOrigin:
			ops = append(ops, r.op(x, y, 5, Ring{Outer: 2.5, Inner: 1.5}, r.dark))
		case atCenter:
			ops = append(ops, r.op(x, y, 1, Circle{Radius: 0.5}, r.dark))
		}
		return ops
	case SubBox:
		switch {
		case atOrigin:
			ops = append(ops, r.op(x, y, 5, SquareRing{Width: 1, Radius: 0.5}, r.dark))
		case atCenter:
			ops = append(ops, r.op(x, y, 1, Rect{}, r.dark))
		}
		return ops
	}

	if !cell.Dark {
		return ops
	}

	switch r.cfg.MarkerSub {
	case SubPlus:
		if (lx == 0 || lx == 4) && (ly == 0 || ly == 4) {
			return ops
		}
	case SubRandom:
		in := func(dx, dy int) bool {
			return r.m.At(x+dx, y+dy).Role == qrcode.Alignment && r.m.Dark(x+dx, y+dy)
		}
		return append(ops, r.op(x, y, 1, r.markerGlyph(PixelRandom, x, y, saltSub, in), r.dark))
	}

	return append(ops, r.op(x, y, 1, Rect{}, r.dark))
}

// marginCell draws margin noise at symbol coordinate (x, y), which lies
// outside the symbol.
func (r *resolver) marginCell(ops []PaintOp, x, y int) []PaintOp {
	if !r.cfg.MarginNoise || r.cfg.RenderPointsType != RenderAll {
		return ops
	}

	if !r.noiseAllowed(x, y) {
		return ops
	}

	if unit(r.cfg.Seed, x, y, saltNoise) >= r.cfg.MarginNoiseRate {
		return ops
	}

	opacity := r.cfg.MarginNoiseOpacity.at(unit(r.cfg.Seed, x, y, saltNoiseOpacity))

	fill := r.dark
	fill.A = uint8(math.Round(float64(fill.A) * opacity))
	if fill.A == 0 {
		return ops
	}

	none := func(dx, dy int) bool { return false }

	return append(ops, r.op(x, y, 1, r.glyph(r.cfg.PixelStyle, x, y, saltNoise, none), fill))
}

// noiseAllowed applies the safe space setting to the margin module (x, y).
func (r *resolver) noiseAllowed(x, y int) bool {
	d := chebyshev(x, y, image.Rect(0, 0, r.n, r.n))

	k := math.MaxInt
	for _, o := range r.origins {
		// Finder pattern plus separator.
		box := image.Rect(o.X-1, o.Y-1, o.X+finderBoxSize-1, o.Y+finderBoxSize-1).Intersect(image.Rect(0, 0, r.n, r.n))
		if dk := chebyshev(x, y, box); dk < k {
			k = dk
		}
	}

	switch r.cfg.MarginNoiseSpace {
	case SafeFull:
		return d > 4
	case SafeMarker:
		return k > 3
	case SafeMinimal:
		return d > 1 && k > 1
	case SafeExtreme:
		return k > 1
	}

	return true
}

// finderBoxSize is the width of a finder pattern with a separator on both
// sides. Clipping to the symbol leaves the 8x8 box each marker owns.
const finderBoxSize = 9

// chebyshev returns the chessboard distance from (x, y) to rect, zero inside.
func chebyshev(x, y int, rect image.Rectangle) int {
	dx, dy := 0, 0

	switch {
	case x < rect.Min.X:
		dx = rect.Min.X - x
	case x >= rect.Max.X:
		dx = x - rect.Max.X + 1
	}

	switch {
	case y < rect.Min.Y:
		dy = rect.Min.Y - y
	case y >= rect.Max.Y:
		dy = y - rect.Max.Y + 1
	}

	if dx > dy {
		return dx
	}

	return dy
}

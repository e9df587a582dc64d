// go-qrcode
// Copyright 2014 Tom Harwood

// Package render rasterizes paint plans.
//
// A render draws the base layer (the light color or a background image
// scaled to cover the canvas), applies a "before" effect, draws every paint
// operation anti-aliased, applies an "after" effect, rotates the canvas and
// finally presents it to a Surface in one step.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/weilsonwonder/go-qrstyle/effect"
	"github.com/weilsonwonder/go-qrstyle/style"
)

// ErrNoImageSource is reported when a plan names a background image but the
// renderer has no ImageSource.
var ErrNoImageSource = errors.New("no image source configured")

// ErrCanvasTooLarge is returned, before anything is allocated, when a plan's
// canvas exceeds the renderer's pixel limit.
var ErrCanvasTooLarge = errors.New("canvas too large")

// DefaultMaxPixels is the canvas limit used when Options.MaxPixels is zero.
// It admits a version 40 symbol at scale 30 with a margin of 20 on every
// side.
const DefaultMaxPixels = 48 << 20

// Warning is a non-fatal problem. The render completes without the feature
// that failed.
type Warning struct {
	// Background is the backgroundImage reference that failed to load.
	Background string
	Err        error
}

func (w Warning) String() string {
	return fmt.Sprintf("background %q not used: %v", w.Background, w.Err)
}

// Options configures a Renderer.
type Options struct {
	// Images resolves background image references. Optional.
	Images ImageSource

	// CacheSize is the number of scaled background images kept. Zero uses
	// a default.
	CacheSize int

	// MaxPixels caps width*height of a canvas. Zero uses DefaultMaxPixels.
	MaxPixels int
}

// Renderer draws paint plans. It is safe for concurrent use.
type Renderer struct {
	backgrounds *backgrounds
	maxPixels   int
}

// New returns a Renderer.
func New(opts Options) *Renderer {
	maxPixels := opts.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	return &Renderer{backgrounds: newBackgrounds(opts.Images, opts.CacheSize), maxPixels: maxPixels}
}

// Render draws plan and presents the result to surface.
//
// The only errors are cancellation of ctx and ErrCanvasTooLarge. The surface
// is left untouched on error.
func Render(ctx context.Context, plan *style.PaintPlan, surface Surface, opts Options) ([]Warning, error) {
	return New(opts).Render(ctx, plan, surface)
}

// Render draws plan and presents the result to surface.
func (r *Renderer) Render(ctx context.Context, plan *style.PaintPlan, surface Surface) ([]Warning, error) {
	img, warnings, err := r.Image(ctx, plan)
	if err != nil {
		return warnings, err
	}

	surface.Present(img)

	return warnings, nil
}

// Image draws plan and returns the finished image.
func (r *Renderer) Image(ctx context.Context, plan *style.PaintPlan) (*image.NRGBA, []Warning, error) {
	var warnings []Warning

	width, height := plan.PixelSize()
	if int64(width)*int64(height) > int64(r.maxPixels) {
		return nil, nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrCanvasTooLarge, width, height, r.maxPixels)
	}

	canvas, w := r.backgrounds.base(ctx, plan.Background, plan.Light, width, height)
	if w != nil {
		warnings = append(warnings, *w)
	}

	if err := ctx.Err(); err != nil {
		return nil, warnings, err
	}

	if plan.Effect.Kind != effect.None && plan.Effect.Timing == effect.Before {
		canvas = effect.Apply(canvas, plan.Effect, plan.Seed)
	}

	if err := drawOps(ctx, canvas, plan.Ops, float64(plan.Scale)); err != nil {
		return nil, warnings, err
	}

	if plan.Effect.Kind != effect.None && plan.Effect.Timing == effect.After {
		canvas = effect.Apply(canvas, plan.Effect, plan.Seed)
	}

	return rotate(canvas, plan.Rotate), warnings, nil
}

// rotate turns img clockwise by degrees, a multiple of 90.
func rotate(img *image.NRGBA, degrees int) *image.NRGBA {
	switch degrees {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}

	return img
}

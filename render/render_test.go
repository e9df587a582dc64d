// go-qrcode
// Copyright 2014 Tom Harwood

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	gzqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrcode "github.com/weilsonwonder/go-qrstyle"
	"github.com/weilsonwonder/go-qrstyle/effect"
	"github.com/weilsonwonder/go-qrstyle/style"
)

func resolvePlan(t *testing.T, text string, level qrcode.RecoveryLevel, cfg style.Config) (*qrcode.SymbolMatrix, *style.PaintPlan) {
	t.Helper()

	req := qrcode.DefaultEncodingRequest(text)
	req.Level = level

	m, err := qrcode.Encode(req)
	require.NoError(t, err)

	p, err := style.Resolve(m, cfg)
	require.NoError(t, err)

	return m, p
}

func renderImage(t *testing.T, p *style.PaintPlan, opts Options) (*image.NRGBA, []Warning) {
	t.Helper()

	canvas := NewCanvas()
	warnings, err := Render(context.Background(), p, canvas, opts)
	require.NoError(t, err)
	require.Equal(t, 1, canvas.Presented())

	return canvas.Image(), warnings
}

func decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	result, err := gzqrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", err
	}

	return result.GetText(), nil
}

func TestCanvasGeometry(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.Margin = style.Margin{Top: 1, Left: 2, Right: 2, Bottom: 1}
	cfg.Scale = 5

	m, p := resolvePlan(t, "geometry", qrcode.Medium, cfg)
	img, warnings := renderImage(t, p, Options{})

	n := m.Size()
	assert.Empty(t, warnings)
	assert.Equal(t, image.Rect(0, 0, (n+4)*5, (n+2)*5), img.Bounds())
}

func TestRotateSwapsAxes(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.Margin = style.Margin{Top: 0, Left: 3, Right: 3, Bottom: 0}
	cfg.Scale = 2
	cfg.Rotate = 90

	m, p := resolvePlan(t, "rotate", qrcode.Medium, cfg)
	img, _ := renderImage(t, p, Options{})

	n := m.Size()
	assert.Equal(t, image.Rect(0, 0, n*2, (n+6)*2), img.Bounds())
}

func TestRotateClockwise(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	// The left pixel of a 2x1 image ends up on top after a clockwise turn.
	got := rotate(src, 90)
	assert.Equal(t, image.Rect(0, 0, 1, 2), got.Bounds())
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, got.NRGBAAt(0, 0))

	got = rotate(src, 270)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, got.NRGBAAt(0, 1))

	assert.Same(t, src, rotate(src, 0))
}

func TestSquareModulesHitPixelCenters(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.PixelStyle = style.PixelSquare
	cfg.MarkerStyle = style.PixelSquare
	cfg.DarkColor = "#203040"
	cfg.LightColor = "#f0e0d0"
	cfg.Scale = 4

	m, p := resolvePlan(t, "centers", qrcode.Medium, cfg)
	img, _ := renderImage(t, p, Options{})

	dark := color.NRGBA{R: 0x20, G: 0x30, B: 0x40, A: 0xff}
	light := color.NRGBA{R: 0xf0, G: 0xe0, B: 0xd0, A: 0xff}

	for y := -2; y < m.Size()+2; y++ {
		for x := -2; x < m.Size()+2; x++ {
			want := light
			if m.Dark(x, y) {
				want = dark
			}

			px, py := (x+2)*4+2, (y+2)*4+2
			require.Equal(t, want, img.NRGBAAt(px, py), "module (%d,%d)", x, y)
		}
	}
}

func TestRenderDecodesForEveryStyle(t *testing.T) {
	const text = "https://example.com/q?id=1234"

	for _, pixel := range style.PixelStyles {
		for _, shape := range style.MarkerShapes {
			t.Run(fmt.Sprintf("%s/%s", pixel, shape), func(t *testing.T) {
				cfg := style.DefaultConfig()
				cfg.PixelStyle = pixel
				cfg.MarkerShape = shape
				cfg.Margin = style.UniformMargin(4)
				cfg.Scale = 8
				cfg.Seed = 11

				decodesAtH(t, text, cfg)
			})
		}
	}
}

// decodesAtH renders text at level H with cfg and checks a decoder reads it
// back.
func decodesAtH(t *testing.T, text string, cfg style.Config) {
	t.Helper()

	_, p := resolvePlan(t, text, qrcode.Highest, cfg)
	img, _ := renderImage(t, p, Options{})

	got, err := decode(img)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestRenderDecodesForEveryCenterAndSubShape(t *testing.T) {
	// Long enough for version 4, which has an alignment pattern.
	const text = "https://example.com/q?id=1234"

	for _, inner := range style.InnerShapes {
		for _, sub := range style.SubShapes {
			t.Run(fmt.Sprintf("%s/%s", inner, sub), func(t *testing.T) {
				cfg := style.DefaultConfig()
				cfg.PixelStyle = style.PixelSquare
				cfg.MarkerInnerShape = inner
				cfg.MarkerSub = sub
				cfg.Margin = style.UniformMargin(4)
				cfg.Scale = 10
				cfg.Seed = 3

				decodesAtH(t, text, cfg)
			})
		}
	}
}

func TestRenderDecodesWithMarginNoise(t *testing.T) {
	const text = "margin noise"

	for _, space := range []style.SafeSpace{style.SafeFull, style.SafeMarker, style.SafeMinimal, style.SafeExtreme, style.SafeNone} {
		t.Run(string(space), func(t *testing.T) {
			cfg := style.DefaultConfig()
			cfg.PixelStyle = style.PixelSquare
			cfg.MarginNoise = true
			cfg.MarginNoiseRate = 0.3
			cfg.MarginNoiseSpace = space
			cfg.Margin = style.UniformMargin(6)
			cfg.Scale = 8
			cfg.Seed = 9

			decodesAtH(t, text, cfg)
		})
	}
}

func TestRenderDecodesRotated(t *testing.T) {
	const text = "rotated"

	for _, degrees := range []int{90, 180, 270} {
		t.Run(fmt.Sprint(degrees), func(t *testing.T) {
			cfg := style.DefaultConfig()
			cfg.Rotate = degrees
			cfg.Margin = style.Margin{Top: 4, Left: 6, Right: 4, Bottom: 5}
			cfg.Scale = 8

			decodesAtH(t, text, cfg)
		})
	}
}

func TestRenderDecodesWithEffects(t *testing.T) {
	const text = "effects"

	tests := []struct {
		name   string
		mutate func(*style.Config)
	}{
		{"crystalize", func(c *style.Config) {
			c.Kind = effect.Crystalize
			c.CrystalizeRadius = 4
		}},
		{"crystalize before", func(c *style.Config) {
			c.Kind = effect.Crystalize
			c.Timing = effect.Before
		}},
		{"liquify", func(c *style.Config) {
			c.Kind = effect.Liquify
			c.LiquifyDistortRadius = 4
			c.LiquifyRadius = 6
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := style.DefaultConfig()
			cfg.PixelStyle = style.PixelSquare
			cfg.Margin = style.UniformMargin(4)
			cfg.Scale = 12
			cfg.Seed = 21
			test.mutate(&cfg)

			decodesAtH(t, text, cfg)
		})
	}
}

func TestRenderDecodesInverted(t *testing.T) {
	const text = "inverted"

	cfg := style.DefaultConfig()
	cfg.Invert = true
	cfg.Margin = style.UniformMargin(4)
	cfg.Scale = 8
	cfg.BackgroundImage = "#000000"

	_, p := resolvePlan(t, text, qrcode.Highest, cfg)
	img, _ := renderImage(t, p, Options{})

	// Light on dark; flip it back for the decoder.
	got, err := decode(imaging.Invert(img))
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestRenderDeterministic(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.PixelStyle = style.PixelRandom
	cfg.MarkerShape = style.MarkerRandom
	cfg.MarginNoise = true
	cfg.MarginNoiseOpacity = style.Range{Min: 0.3, Max: 1}
	cfg.Scale = 6
	cfg.Kind = effect.Crystalize
	cfg.CrystalizeRadius = 4
	cfg.Seed = 5

	_, p := resolvePlan(t, "same every time", qrcode.Medium, cfg)

	first, _ := renderImage(t, p, Options{})
	for i := 0; i < 3; i++ {
		again, _ := renderImage(t, p, Options{})
		assert.Equal(t, first.Pix, again.Pix)
	}
}

func TestEffectTiming(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.PixelStyle = style.PixelSquare
	cfg.Scale = 6
	cfg.Kind = effect.Crystalize
	cfg.CrystalizeRadius = 5

	_, p := resolvePlan(t, "timing", qrcode.Medium, cfg)
	after, _ := renderImage(t, p, Options{})

	p.Effect.Timing = effect.Before
	before, _ := renderImage(t, p, Options{})

	p.Effect.Kind = effect.None
	plain, _ := renderImage(t, p, Options{})

	// Crystalizing a uniform base layer changes nothing.
	assert.Equal(t, plain.Pix, before.Pix)
	assert.NotEqual(t, plain.Pix, after.Pix)
}

func TestBackgroundColor(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.BackgroundImage = "#00ff00"
	cfg.Scale = 2

	_, p := resolvePlan(t, "green", qrcode.Medium, cfg)
	img, warnings := renderImage(t, p, Options{})

	assert.Empty(t, warnings)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, img.NRGBAAt(0, 0))
}

func TestBackgroundImageCached(t *testing.T) {
	loads := 0
	source := ImageSourceFunc(func(ctx context.Context, ref string) (image.Image, error) {
		loads++
		return imaging.New(10, 10, color.NRGBA{B: 0xff, A: 0xff}), nil
	})

	cfg := style.DefaultConfig()
	cfg.BackgroundImage = "sky.png"
	cfg.Scale = 2

	_, p := resolvePlan(t, "cached", qrcode.Medium, cfg)

	r := New(Options{Images: source})
	for i := 0; i < 3; i++ {
		img, warnings, err := r.Image(context.Background(), p)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, img.NRGBAAt(0, 0))
	}

	assert.Equal(t, 1, loads)
}

func TestBackgroundLoadFailureWarns(t *testing.T) {
	failing := ImageSourceFunc(func(ctx context.Context, ref string) (image.Image, error) {
		return nil, errors.New("not found")
	})

	cfg := style.DefaultConfig()
	cfg.BackgroundImage = "missing.png"
	cfg.LightColor = "#fafafa"
	cfg.Scale = 2

	_, p := resolvePlan(t, "warn", qrcode.Medium, cfg)

	img, warnings := renderImage(t, p, Options{Images: failing})
	require.Len(t, warnings, 1)
	assert.Equal(t, "missing.png", warnings[0].Background)
	assert.Equal(t, color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}, img.NRGBAAt(0, 0))

	_, warnings = renderImage(t, p, Options{})
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0].Err, ErrNoImageSource)

	_, warnings = renderImage(t, p, Options{Images: FileSource{Root: t.TempDir()}})
	require.Len(t, warnings, 1)
}

func TestRenderCancelled(t *testing.T) {
	_, p := resolvePlan(t, "cancel", qrcode.Medium, style.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	canvas := NewCanvas()
	_, err := Render(ctx, p, canvas, Options{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, canvas.Image())
	assert.Zero(t, canvas.Presented())
}

func TestCanvasTooLarge(t *testing.T) {
	cfg := style.DefaultConfig()
	cfg.Scale = 10

	_, p := resolvePlan(t, "large", qrcode.Medium, cfg)

	canvas := NewCanvas()
	_, err := Render(context.Background(), p, canvas, Options{MaxPixels: 100 * 100})
	assert.ErrorIs(t, err, ErrCanvasTooLarge)
	assert.Zero(t, canvas.Presented())

	// Version 1 with a margin of 2 is 250x250 at scale 10.
	_, err = Render(context.Background(), p, canvas, Options{MaxPixels: 250 * 250})
	assert.NoError(t, err)
}

func TestEveryShapeDraws(t *testing.T) {
	shapes := []style.Shape{
		style.Rect{},
		style.Rect{Inset: 0.2},
		style.RoundedRect{TopLeft: 1, BottomRight: 0.5},
		style.Circle{Radius: 1},
		style.Ring{Outer: 1.5, Inner: 0.5},
		style.Plus{Arm: 1},
		style.Octagon{Cut: 0.6},
		style.OctagonRing{Cut: 1, Width: 0.5},
		style.SquareRing{Width: 0.5, Radius: 0.5},
	}

	for _, shape := range shapes {
		t.Run(fmt.Sprintf("%T", shape), func(t *testing.T) {
			canvas := imaging.New(60, 60, color.White)
			op := style.PaintOp{X: 1, Y: 1, Span: 3, Shape: shape, Fill: color.NRGBA{A: 0xff}}

			require.NoError(t, drawOps(context.Background(), canvas, []style.PaintOp{op}, 10))

			// Outside the box stays untouched.
			assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, canvas.NRGBAAt(2, 2))
			assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, canvas.NRGBAAt(55, 55))

			dark := 0
			for i := 0; i < len(canvas.Pix); i += 4 {
				if canvas.Pix[i] < 0x80 {
					dark++
				}
			}
			assert.NotZero(t, dark)
		})
	}
}

func TestRingLeavesCenterOpen(t *testing.T) {
	rings := []style.Shape{
		style.Ring{Outer: 1.5, Inner: 1},
		style.SquareRing{Width: 0.5, Radius: 0},
		style.SquareRing{Width: 0.5, Radius: 1},
		style.OctagonRing{Cut: 1, Width: 0.5},
	}

	for _, shape := range rings {
		t.Run(fmt.Sprintf("%#v", shape), func(t *testing.T) {
			canvas := imaging.New(30, 30, color.White)
			op := style.PaintOp{Span: 3, Shape: shape, Fill: color.NRGBA{A: 0xff}}

			require.NoError(t, drawOps(context.Background(), canvas, []style.PaintOp{op}, 10))

			assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, canvas.NRGBAAt(15, 15))
			assert.Equal(t, color.NRGBA{A: 0xff}, canvas.NRGBAAt(15, 2))
			assert.Equal(t, color.NRGBA{A: 0xff}, canvas.NRGBAAt(2, 15))
		})
	}
}

func TestFinderRingSamples(t *testing.T) {
	// Sample the middle row of the top left marker: one dark module, one
	// light, three dark, one light, one dark.
	want := "#.###.#"

	for _, shape := range style.MarkerShapes {
		t.Run(string(shape), func(t *testing.T) {
			cfg := style.DefaultConfig()
			cfg.PixelStyle = style.PixelSquare
			cfg.MarkerShape = shape
			cfg.MarkerInnerShape = style.InnerSquare
			cfg.Margin = style.UniformMargin(2)
			cfg.Scale = 10

			_, p := resolvePlan(t, "ring", qrcode.Highest, cfg)
			img, _ := renderImage(t, p, Options{})

			row := (2+3)*10 + 5
			got := ""
			for x := 0; x < 7; x++ {
				if img.NRGBAAt((2+x)*10+5, row).R < 0x80 {
					got += "#"
				} else {
					got += "."
				}
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestRotatedOpSpansBands(t *testing.T) {
	canvas := imaging.New(40, 200, color.White)
	op := style.PaintOp{X: 0, Y: 0, Span: 2, Shape: style.Rect{}, Fill: color.NRGBA{A: 0xff}, Rotation: 45}

	// The box straddles the first band boundary.
	require.NoError(t, drawOps(context.Background(), canvas, []style.PaintOp{op}, 35))

	assert.Equal(t, color.NRGBA{A: 0xff}, canvas.NRGBAAt(35, 35))
	assert.Equal(t, color.NRGBA{A: 0xff}, canvas.NRGBAAt(35, 66))
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, canvas.NRGBAAt(1, 1))
}

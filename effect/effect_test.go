// go-qrcode
// Copyright 2014 Tom Harwood

package effect

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrcode "github.com/weilsonwonder/go-qrstyle"
)

// checkerboard returns a w*h image of cell*cell black and white squares.
func checkerboard(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	return img
}

func TestApplyNoneClones(t *testing.T) {
	src := checkerboard(20, 10, 3)

	got := Apply(src, DefaultConfig(), 1)

	assert.Equal(t, src.Pix, got.Pix)
	got.Pix[0] = 0x7f
	assert.NotEqual(t, src.Pix[0], got.Pix[0])
}

func TestApplyEmptyImage(t *testing.T) {
	for _, kind := range []Kind{None, Crystalize, Liquify} {
		cfg := DefaultConfig()
		cfg.Kind = kind

		got := Apply(image.NewNRGBA(image.Rect(0, 0, 0, 0)), cfg, 1)
		assert.True(t, got.Bounds().Empty(), kind)
	}
}

func TestCrystalize(t *testing.T) {
	src := checkerboard(64, 48, 8)

	cfg := DefaultConfig()
	cfg.Kind = Crystalize
	cfg.CrystalizeRadius = 6

	a := Apply(src, cfg, 7)
	b := Apply(src, cfg, 7)

	assert.Equal(t, src.Bounds(), a.Bounds())
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, src.Pix, a.Pix)

	c := Apply(src, cfg, 8)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestCrystalizeNearestSeed(t *testing.T) {
	const spacing = 5

	src := checkerboard(37, 29, 3)
	got := crystalize(src, spacing, 42)

	w, h := 37, 29
	cols, rows := (w+spacing-1)/spacing, (h+spacing-1)/spacing

	var points [][2]float64
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			jx, jy := jitter(42, i, j)
			points = append(points, [2]float64{float64(i*spacing) + jx*spacing, float64(j*spacing) + jy*spacing})
		}
	}

	// Label every pixel by a search over all seeds.
	labels := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best, bestDist := 0, -1.0
			for k, p := range points {
				dx, dy := p[0]-float64(x)-0.5, p[1]-float64(y)-0.5
				if d := dx*dx + dy*dy; bestDist < 0 || d < bestDist {
					best, bestDist = k, d
				}
			}
			labels[y*w+x] = best
		}
	}

	// Pixels sharing a seed share a color, and every cell is uniform.
	first := map[int]color.NRGBA{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := got.NRGBAAt(x, y)
			if prev, ok := first[labels[y*w+x]]; ok {
				require.Equal(t, prev, c, "pixel (%d,%d)", x, y)
			} else {
				first[labels[y*w+x]] = c
			}
		}
	}
}

func TestCrystalizeUniformImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 17, 9))
	for i := range src.Pix {
		src.Pix[i] = 0x42
	}

	cfg := DefaultConfig()
	cfg.Kind = Crystalize
	cfg.CrystalizeRadius = 0.2

	assert.Equal(t, src.Pix, Apply(src, cfg, 3).Pix)
}

func TestLiquify(t *testing.T) {
	src := checkerboard(40, 40, 10)

	cfg := DefaultConfig()
	cfg.Kind = Liquify
	cfg.LiquifyDistortRadius = 4
	cfg.LiquifyRadius = 2

	a := Apply(src, cfg, 1)
	b := Apply(src, cfg, 99)

	assert.Equal(t, src.Bounds(), a.Bounds())
	assert.Equal(t, a.Pix, b.Pix, "liquify does not depend on the seed")
	assert.NotEqual(t, src.Pix, a.Pix)
}

func TestLiquifyFlatImageUnchanged(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 12, 12))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}

	cfg := DefaultConfig()
	cfg.Kind = Liquify

	assert.Equal(t, src.Pix, Apply(src, cfg, 1).Pix)
}

func TestKindUnmarshal(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{"effect":"liquidify","effectTiming":"before"}`), &cfg))
	assert.Equal(t, Liquify, cfg.Kind)
	assert.Equal(t, Before, cfg.Timing)

	require.NoError(t, json.Unmarshal([]byte(`{"effect":"Crystalize"}`), &cfg))
	assert.Equal(t, Crystalize, cfg.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"effect":"sparkle"}`), &cfg))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		field  string
		mutate func(c *Config)
	}{
		{"effect", func(c *Config) { c.Kind = "sparkle" }},
		{"effectTiming", func(c *Config) { c.Timing = "during" }},
		{"effectCrystalizeRadius", func(c *Config) { c.CrystalizeRadius = -1 }},
		{"effectLiquidifyDistortRadius", func(c *Config) { c.LiquifyDistortRadius = 0 }},
		{"effectLiquidifyRadius", func(c *Config) { c.LiquifyRadius = 0 }},
		{"effectLiquidifyThreshold", func(c *Config) { c.LiquifyThreshold = 300 }},
	}

	for _, test := range tests {
		cfg := DefaultConfig()
		test.mutate(&cfg)

		var cerr *qrcode.ConfigurationError
		require.True(t, errors.As(cfg.Validate(), &cerr), test.field)
		assert.Equal(t, test.field, cerr.Field)
	}
}

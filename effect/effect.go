// go-qrcode
// Copyright 2014 Tom Harwood

package effect

import (
	"image"
	"runtime"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Apply returns a copy of img with the configured effect applied. The seed
// drives every random choice, so equal inputs give equal outputs.
//
// Images with zero area are returned unchanged.
func Apply(img image.Image, cfg Config, seed int64) *image.NRGBA {
	dst := imaging.Clone(img)
	if dst.Bounds().Empty() {
		return dst
	}

	switch cfg.Kind {
	case Crystalize:
		return crystalize(dst, cfg.CrystalizeRadius, seed)
	case Liquify:
		return liquify(dst, cfg.LiquifyDistortRadius, cfg.LiquifyRadius, cfg.LiquifyThreshold)
	}

	return dst
}

// parallelRows calls fn for each row of bounds, spread over GOMAXPROCS
// workers.
func parallelRows(bounds image.Rectangle, fn func(y int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		g.Go(func() error {
			fn(y)
			return nil
		})
	}

	_ = g.Wait()
}

// go-qrcode
// Copyright 2014 Tom Harwood

package effect

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// liquify displaces pixels along the gradient of the blurred luminance.
// Regions brighter than threshold are pushed uphill and darker regions
// downhill, by up to distort pixels.
func liquify(img *image.NRGBA, distort, radius, threshold float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	blurred := imaging.Blur(img, radius)

	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := blurred.PixOffset(x, y)
			p := blurred.Pix[off : off+3]
			lum[y*w+x] = 0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])
		}
	}

	at := func(x, y int) float64 {
		x = clamp(x, 0, w-1)
		y = clamp(y, 0, h-1)
		return lum[y*w+x]
	}

	dst := image.NewNRGBA(b)

	parallelRows(image.Rect(0, 0, w, h), func(y int) {
		for x := 0; x < w; x++ {
			gx := (at(x+1, y) - at(x-1, y)) / 2
			gy := (at(x, y+1) - at(x, y-1)) / 2

			sx, sy := float64(x), float64(y)
			if mag := math.Hypot(gx, gy); mag > 1e-6 {
				amount := distort * (at(x, y) - threshold) / 256
				sx += gx / mag * amount
				sy += gy / mag * amount
			}

			off := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			sample(img, sx, sy, dst.Pix[off:off+4])
		}
	})

	return dst
}

// sample writes the bilinear interpolation of img at (fx, fy), relative to
// its bounds, into out. Coordinates outside the image are clamped.
func sample(img *image.NRGBA, fx, fy float64, out []uint8) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	fx = math.Max(0, math.Min(fx, float64(w-1)))
	fy = math.Max(0, math.Min(fy, float64(h-1)))

	x0, y0 := int(fx), int(fy)
	x1, y1 := clamp(x0+1, 0, w-1), clamp(y0+1, 0, h-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	p00 := img.PixOffset(b.Min.X+x0, b.Min.Y+y0)
	p10 := img.PixOffset(b.Min.X+x1, b.Min.Y+y0)
	p01 := img.PixOffset(b.Min.X+x0, b.Min.Y+y1)
	p11 := img.PixOffset(b.Min.X+x1, b.Min.Y+y1)

	for c := 0; c < 4; c++ {
		top := float64(img.Pix[p00+c])*(1-tx) + float64(img.Pix[p10+c])*tx
		bottom := float64(img.Pix[p01+c])*(1-tx) + float64(img.Pix[p11+c])*tx
		out[c] = uint8(math.Round(top*(1-ty) + bottom*ty))
	}
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}

	return v
}

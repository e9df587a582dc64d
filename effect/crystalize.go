// go-qrcode
// Copyright 2014 Tom Harwood

package effect

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/cespare/xxhash/v2"
)

// crystalize partitions the image into cells around seed points placed on a
// jittered grid with a spacing of radius pixels. Every pixel joins its
// nearest seed, and each cell is filled with its mean color.
func crystalize(img *image.NRGBA, radius float64, seed int64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	spacing := int(math.Round(radius))
	if spacing < 1 {
		spacing = 1
	}

	cols := (w + spacing - 1) / spacing
	rows := (h + spacing - 1) / spacing

	points := make([][2]float64, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			jx, jy := jitter(seed, i, j)
			points[j*cols+i] = [2]float64{
				float64(i*spacing) + jx*float64(spacing),
				float64(j*spacing) + jy*float64(spacing),
			}
		}
	}

	labels := make([]int32, w*h)

	parallelRows(image.Rect(0, 0, w, h), func(y int) {
		gj := y / spacing

		for x := 0; x < w; x++ {
			gi := x / spacing

			// Seeds lie inside their grid cell. The pixel's own seed is
			// within sqrt(2) spacings and seeds three cells away are at
			// least two spacings off, so a 5x5 window is exact.
			best, bestDist := int32(-1), math.MaxFloat64
			for j := gj - 2; j <= gj+2; j++ {
				for i := gi - 2; i <= gi+2; i++ {
					if i < 0 || j < 0 || i >= cols || j >= rows {
						continue
					}

					p := points[j*cols+i]
					dx, dy := p[0]-float64(x)-0.5, p[1]-float64(y)-0.5
					if d := dx*dx + dy*dy; d < bestDist {
						best, bestDist = int32(j*cols+i), d
					}
				}
			}

			labels[y*w+x] = best
		}
	})

	sums := make([][5]uint64, len(points))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			s := &sums[labels[y*w+x]]
			s[0] += uint64(img.Pix[off+0])
			s[1] += uint64(img.Pix[off+1])
			s[2] += uint64(img.Pix[off+2])
			s[3] += uint64(img.Pix[off+3])
			s[4]++
		}
	}

	mean := make([][4]uint8, len(sums))
	for i, s := range sums {
		if s[4] == 0 {
			continue
		}
		for c := 0; c < 4; c++ {
			mean[i][c] = uint8((s[c] + s[4]/2) / s[4])
		}
	}

	dst := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
			copy(dst.Pix[off:off+4], mean[labels[y*w+x]][:])
		}
	}

	return dst
}

// jitter returns the offset of the seed point of grid cell (i, j) as a
// fraction of the spacing.
func jitter(seed int64, i, j int) (float64, float64) {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(i)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(j)))

	v := xxhash.Sum64(buf[:])

	return float64(v>>40) / (1 << 24), float64(v&0xffffff) / (1 << 24)
}

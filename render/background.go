// go-qrcode
// Copyright 2014 Tom Harwood

package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/weilsonwonder/go-qrstyle/style"
)

// ImageSource loads the image a backgroundImage reference names.
type ImageSource interface {
	Open(ctx context.Context, ref string) (image.Image, error)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func(ctx context.Context, ref string) (image.Image, error)

// Open calls f.
func (f ImageSourceFunc) Open(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}

// FileSource resolves references as paths below Root.
type FileSource struct {
	Root string
}

// Open decodes the file, applying any EXIF orientation.
func (s FileSource) Open(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := ref
	if s.Root != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(s.Root, ref)
	}

	return imaging.Open(path, imaging.AutoOrientation(true))
}

type backgroundKey struct {
	ref           string
	width, height int
}

// backgrounds caches background images already scaled to a canvas size.
type backgrounds struct {
	source ImageSource
	cache  *lru.Cache[backgroundKey, *image.NRGBA]
}

func newBackgrounds(source ImageSource, size int) *backgrounds {
	if size <= 0 {
		size = defaultCacheSize
	}

	cache, err := lru.New[backgroundKey, *image.NRGBA](size)
	if err != nil {
		log.Panicf("background cache: %v", err)
	}

	return &backgrounds{source: source, cache: cache}
}

const defaultCacheSize = 16

// base returns the bottom layer of a width x height canvas. The light color
// is used when there is no background or it cannot be loaded.
func (b *backgrounds) base(ctx context.Context, ref string, light color.NRGBA, width, height int) (*image.NRGBA, *Warning) {
	fill := imaging.New(width, height, light)

	if ref == "" {
		return fill, nil
	}

	if c, err := style.ParseColor(ref); err == nil {
		return imaging.New(width, height, c), nil
	}

	key := backgroundKey{ref: ref, width: width, height: height}
	if img, ok := b.cache.Get(key); ok {
		return imaging.Overlay(fill, img, image.Point{}, 1), nil
	}

	if b.source == nil {
		return fill, &Warning{Background: ref, Err: ErrNoImageSource}
	}

	src, err := b.source.Open(ctx, ref)
	if err != nil {
		return fill, &Warning{Background: ref, Err: err}
	}

	if src.Bounds().Empty() {
		return fill, &Warning{Background: ref, Err: fmt.Errorf("image is empty")}
	}

	img := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
	b.cache.Add(key, img)

	return imaging.Overlay(fill, img, image.Point{}, 1), nil
}

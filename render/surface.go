// go-qrcode
// Copyright 2014 Tom Harwood

package render

import (
	"image"
	"sync"
)

// Surface is a drawing target. A renderer prepares the whole image off
// screen and hands it over with a single Present call, so a surface never
// shows a partially drawn symbol.
type Surface interface {
	Present(img *image.NRGBA)
}

// Canvas is an in-memory Surface. It is safe for concurrent use.
type Canvas struct {
	mu  sync.RWMutex
	img *image.NRGBA
	n   int
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Present replaces the current image.
func (c *Canvas) Present(img *image.NRGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.img = img
	c.n++
}

// Image returns the last presented image, or nil.
func (c *Canvas) Image() *image.NRGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.img
}

// Presented returns the number of images presented so far.
func (c *Canvas) Presented() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.n
}

// go-qrcode
// Copyright 2014 Tom Harwood

package generator

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// WritePNG encodes img as a PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
}

// PNG returns the result encoded as a PNG.
func (r *Result) PNG() ([]byte, error) {
	var b bytes.Buffer
	if err := WritePNG(&b, r.Image); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Artifact is a finished result handed to a Consumer.
type Artifact struct {
	ID      uuid.UUID
	Created time.Time

	Text          string
	Version       int
	Width, Height int

	PNG      []byte
	Settings Settings
}

// Artifact packages the result with a new ID.
func (r *Result) Artifact() (*Artifact, error) {
	data, err := r.PNG()
	if err != nil {
		return nil, err
	}

	b := r.Image.Bounds()

	return &Artifact{
		ID:       uuid.New(),
		Created:  time.Now(),
		Text:     r.Settings.Text,
		Version:  r.Matrix.Version(),
		Width:    b.Dx(),
		Height:   b.Dy(),
		PNG:      data,
		Settings: r.Settings,
	}, nil
}

// Consumer receives results the user chose to keep.
type Consumer interface {
	Use(ctx context.Context, a *Artifact) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(ctx context.Context, a *Artifact) error

// Use calls f.
func (f ConsumerFunc) Use(ctx context.Context, a *Artifact) error {
	return f(ctx, a)
}

// UseNow packages r and hands it to c.
func UseNow(ctx context.Context, r *Result, c Consumer) (*Artifact, error) {
	a, err := r.Artifact()
	if err != nil {
		return nil, err
	}

	if err := c.Use(ctx, a); err != nil {
		return nil, err
	}

	metricArtifacts.Inc()

	return a, nil
}

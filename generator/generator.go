// go-qrcode
// Copyright 2014 Tom Harwood

// Package generator runs the complete pipeline: settings are encoded into a
// symbol, resolved into a paint plan and rendered to an image.
//
//	g := generator.New(logrus.StandardLogger(), render.Options{})
//	res, err := g.Generate(ctx, generator.DefaultSettings("https://example.com"))
//	if err != nil {
//		return err
//	}
//	png, err := res.PNG()
//
// A Session keeps one live preview up to date as settings change.
package generator

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	qrcode "github.com/weilsonwonder/go-qrstyle"
	"github.com/weilsonwonder/go-qrstyle/render"
	"github.com/weilsonwonder/go-qrstyle/style"
)

// Generator produces styled symbols. It is safe for concurrent use.
type Generator struct {
	log      *logrus.Logger
	renderer *render.Renderer
}

// New returns a Generator logging to logger.
func New(logger *logrus.Logger, opts render.Options) *Generator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Generator{log: logger, renderer: render.New(opts)}
}

// Result is one generated symbol.
type Result struct {
	Settings Settings
	Matrix   *qrcode.SymbolMatrix
	Image    *image.NRGBA
	Warnings []render.Warning
	Elapsed  time.Duration
}

// Generate encodes, styles and renders s.
//
// Invalid settings return a *qrcode.ConfigurationError, text that cannot be
// encoded a *qrcode.EncodingError. Render warnings are logged and returned
// in the result.
func (g *Generator) Generate(ctx context.Context, s Settings) (*Result, error) {
	start := time.Now()

	res, err := g.generate(ctx, s)

	metricGenerations.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	metricGenerationSeconds.Observe(res.Elapsed.Seconds())
	metricSymbolVersion.Observe(float64(res.Matrix.Version()))

	return res, nil
}

func (g *Generator) generate(ctx context.Context, s Settings) (*Result, error) {
	if err := s.Config.Validate(); err != nil {
		g.log.WithError(err).Debug("invalid style")
		return nil, err
	}

	m, err := qrcode.Encode(s.EncodingRequest)
	if err != nil {
		entry := g.log.WithError(err).WithField("length", len(s.Text))
		var encErr *qrcode.EncodingError
		if errors.As(err, &encErr) {
			entry = entry.WithField("reason", encErr.Reason)
		}
		entry.Warn("encode failed")

		return nil, err
	}

	log := g.log.WithFields(logrus.Fields{
		"version": m.Version(),
		"level":   m.Level(),
		"mask":    m.Mask(),
	})

	plan, err := style.Resolve(m, s.Config)
	if err != nil {
		return nil, err
	}

	img, warnings, err := g.renderer.Image(ctx, plan)
	for _, w := range warnings {
		metricWarnings.Inc()
		log.WithField("background", w.Background).WithError(w.Err).Warn("background not used")
	}
	if err != nil {
		log.WithError(err).Debug("render abandoned")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"ops":    len(plan.Ops),
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("generated")

	return &Result{Settings: s, Matrix: m, Image: img, Warnings: warnings}, nil
}

func resultLabel(err error) string {
	var cfgErr *qrcode.ConfigurationError

	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, qrcode.ErrTextTooLong):
		return "too_long"
	case errors.Is(err, render.ErrCanvasTooLarge):
		return "too_large"
	case errors.As(err, &cfgErr), errors.Is(err, qrcode.ErrInvalidVersionRange), errors.Is(err, qrcode.ErrUnsupportedCharacterSet):
		return "invalid"
	}

	return "error"
}

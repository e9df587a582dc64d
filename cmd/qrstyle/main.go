// go-qrcode
// Copyright 2014 Tom Harwood

// Command qrstyle renders styled QR codes.
//
//	qrstyle render -s settings.yaml -o out.png "https://example.com"
//	qrstyle render "HELLO WORLD"          # terminal preview
//	qrstyle serve --listen :8080          # preview server
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/weilsonwonder/go-qrstyle/generator"
	"github.com/weilsonwonder/go-qrstyle/render"
)

type cli struct {
	LogLevel  string `help:"Log level" default:"info" enum:"debug,info,warn,error" env:"QRSTYLE_LOG_LEVEL"`
	ImageDir  string `help:"Directory background image references are resolved in" default:"." env:"QRSTYLE_IMAGE_DIR"`
	CacheSize int    `help:"Number of scaled background images to cache" default:"16" env:"QRSTYLE_CACHE_SIZE"`
	MaxPixels int    `help:"Largest canvas, in pixels, a render may allocate" default:"50331648" env:"QRSTYLE_MAX_PIXELS"`

	Render renderCmd `cmd:"" help:"Render a styled QR code to a PNG file or the terminal"`
	Serve  serveCmd  `cmd:"" help:"Run the HTTP preview server"`
}

func main() {
	var params cli
	ctx := kong.Parse(&params, kong.Description("Styled QR code generator"))

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(params.LogLevel); err == nil {
		log.SetLevel(level)
	}

	gen := generator.New(log, render.Options{
		Images:    render.FileSource{Root: params.ImageDir},
		CacheSize: params.CacheSize,
		MaxPixels: params.MaxPixels,
	})

	ctx.FatalIfErrorf(ctx.Run(gen, log))
}

type renderCmd struct {
	Settings string `short:"s" help:"Settings document (JSON or YAML)" type:"existingfile"`
	Output   string `short:"o" help:"PNG file to write; omit for a terminal preview"`
	Inverse  bool   `help:"Invert the terminal preview for light backgrounds"`
	Text     string `arg:"" optional:"" help:"Text to encode; overrides the settings document"`
}

func (c *renderCmd) Run(gen *generator.Generator, log *logrus.Logger) error {
	settings := generator.DefaultSettings("")
	if c.Settings != "" {
		var err error
		if settings, err = generator.LoadSettings(c.Settings); err != nil {
			return err
		}
	}

	if c.Text != "" {
		settings.Text = c.Text
	}

	res, err := gen.Generate(context.Background(), settings)
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Print(res.Matrix.ToSmallString(c.Inverse))
		return nil
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}

	if err := generator.WritePNG(f, res.Image); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file":    c.Output,
		"version": res.Matrix.Version(),
		"width":   res.Image.Bounds().Dx(),
		"height":  res.Image.Bounds().Dy(),
	}).Info("wrote image")

	return nil
}

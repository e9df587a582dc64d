// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// A QRCode is an encoded symbol drawn as plain square modules.
type QRCode struct {
	// Original content encoded.
	Content string

	// QR Code type.
	Level         RecoveryLevel
	VersionNumber int

	// User settable drawing options.
	BackgroundColor color.Color
	ForegroundColor color.Color

	// Disable the QR Code border.
	DisableBorder bool

	matrix *SymbolMatrix
}

// New constructs a QRCode using the smallest version able to hold content
// and automatic mask selection.
//
//	var q *qrcode.QRCode
//	q, err := qrcode.New("my content", qrcode.Medium)
//
// An error occurs if the content is too long.
func New(content string, level RecoveryLevel) (*QRCode, error) {
	req := DefaultEncodingRequest(content)
	req.Level = level

	m, err := Encode(req)
	if err != nil {
		return nil, err
	}

	return &QRCode{
		Content: content,

		Level:         m.Level(),
		VersionNumber: m.Version(),

		BackgroundColor: color.White,
		ForegroundColor: color.Black,

		matrix: m,
	}, nil
}

// Matrix returns the encoded symbol.
func (q *QRCode) Matrix() *SymbolMatrix {
	return q.matrix
}

// Bitmap returns the QR Code as a 2D array of 1-bit pixels.
//
// bitmap[y][x] is true if the pixel at (x, y) is set.
//
// The bitmap includes the required "quiet zone" around the QR Code to aid
// decoding, unless DisableBorder is set.
func (q *QRCode) Bitmap() [][]bool {
	border := quietZoneSize
	if q.DisableBorder {
		border = 0
	}

	return q.matrix.Bitmap(border)
}

// Image returns the QR Code as an image.Image.
//
// A positive size sets a fixed image width and height (e.g. 256 yields an
// 256x256px image).
//
// A negative size causes a variable sized image to be returned. The image
// returned is the minimum size required for the QR Code. Choose a larger
// negative number to increase the scale of the image. e.g. a size of -5 causes
// each module (QR Code "pixel") to be 5px in size.
func (q *QRCode) Image(size int) image.Image {
	bitmap := q.Bitmap()

	// Minimum pixels (both width and height) required.
	realSize := len(bitmap)

	// Variable size support.
	if size < 0 {
		size = size * -1 * realSize
	}

	// Actual pixels available to draw the symbol. Automatically increase the
	// image size if it's not large enough.
	if size < realSize {
		size = realSize
	}

	rect := image.Rectangle{Min: image.Point{0, 0}, Max: image.Point{size, size}}

	// Saves a few bytes to have them in this order
	p := color.Palette([]color.Color{q.BackgroundColor, q.ForegroundColor})
	img := image.NewPaletted(rect, p)
	fgClr := uint8(img.Palette.Index(q.ForegroundColor))

	// Map each image pixel to the nearest QR code module.
	modulesPerPixel := float64(realSize) / float64(size)
	for y := 0; y < size; y++ {
		y2 := int(float64(y) * modulesPerPixel)
		for x := 0; x < size; x++ {
			x2 := int(float64(x) * modulesPerPixel)

			if bitmap[y2][x2] {
				img.Pix[img.PixOffset(x, y)] = fgClr
			}
		}
	}

	return img
}

// PNG returns the QR Code as a PNG image.
//
// size is both the image width and height in pixels. If size is too small then
// a larger image is silently returned. Negative values for size cause a
// variable sized image to be returned: See the documentation for Image().
func (q *QRCode) PNG(size int) ([]byte, error) {
	img := q.Image(size)

	encoder := png.Encoder{CompressionLevel: png.BestCompression}

	var b bytes.Buffer
	if err := encoder.Encode(&b, img); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Write writes the QR Code as a PNG image to io.Writer.
func (q *QRCode) Write(size int, out io.Writer) error {
	png, err := q.PNG(size)
	if err != nil {
		return err
	}

	_, err = out.Write(png)
	return err
}

// WriteFile writes the QR Code as a PNG image to the specified file.
func (q *QRCode) WriteFile(size int, filename string) error {
	png, err := q.PNG(size)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, png, os.FileMode(0644))
}

// ToSmallString produces a multi-line string that forms a QR-code image using
// half height block characters.
func (q *QRCode) ToSmallString(inverseColor bool) string {
	return q.matrix.ToSmallString(inverseColor)
}

// Package qr renders payment URIs as QR code PNG images using the
// skip2/go-qrcode library.
package qr

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ErrRender wraps any failure from the underlying QR library.
var ErrRender = errors.New("qr render failed")

const (
	// DefaultSize is the rendered image width/height in pixels.
	DefaultSize = 512

	minSize = 128
	maxSize = 2048
)

// Options controls how the QR image is rendered.
type Options struct {
	// Size is the pixel width and height. Zero means DefaultSize.
	Size int

	// Border renders the quiet zone around the code. Most scanners
	// cope without it, but keep it on for reliability.
	Border bool

	// Foreground and Background are module and background colors.
	// Nil means black on white.
	Foreground color.Color
	Background color.Color
}

// DefaultOptions returns black-on-white rendering at DefaultSize with a
// border.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Border: true}
}

// Renderer renders URIs as PNG bytes with fixed options. It implements
// payment.Renderer.
type Renderer struct {
	opts Options
}

// NewRenderer validates opts and returns a Renderer. The size must be
// between 128 and 2048 pixels; zero selects the default.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Size < minSize || opts.Size > maxSize {
		return nil, fmt.Errorf("qr size %d out of range [%d, %d]", opts.Size, minSize, maxSize)
	}
	return &Renderer{opts: opts}, nil
}

// Render encodes uri as a QR code and returns the PNG bytes.
func (r *Renderer) Render(uri string) ([]byte, error) {
	code, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	code.DisableBorder = !r.opts.Border
	if r.opts.Foreground != nil {
		code.ForegroundColor = r.opts.Foreground
	}
	if r.opts.Background != nil {
		code.BackgroundColor = r.opts.Background
	}

	png, err := code.PNG(r.opts.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return png, nil
}

// ParseColor parses a "#RRGGBB" hex color. The leading "#" is optional.
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

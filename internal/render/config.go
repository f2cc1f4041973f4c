package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Defaults taken by DefaultConfig and by Render for zero values.
const (
	DefaultMargin       = 0.02
	DefaultBatchSize    = 200
	DefaultMarkerRadius = 5.0
	DefaultLineWidth    = 1.0
)

// Viewport is the drawing surface as handed over by the host.
type Viewport struct {
	Width, Height float64 // logical pixels
	Margin        float64 // fraction of each dimension reserved on every side
	PixelRatio    float64 // device pixels per logical pixel, 0 means 1
}

// Ratio returns the device pixel ratio, defaulting to 1.
func (v Viewport) Ratio() float64 {
	if !(v.PixelRatio > 0) {
		return 1
	}
	return v.PixelRatio
}

// ErrInvalidViewport reports a viewport with no drawable area. It wraps
// ErrSurfaceUnavailable.
var ErrInvalidViewport = fmt.Errorf("%w: invalid viewport", ErrSurfaceUnavailable)

// Validate reports ErrInvalidViewport unless the size is positive and
// finite, the margin lies in [0, 0.5) and the pixel ratio is finite.
func (v Viewport) Validate() error {
	if !(finite(v.Width) && finite(v.Height) && v.Width > 0 && v.Height > 0) {
		return fmt.Errorf("%w %gx%g", ErrInvalidViewport, v.Width, v.Height)
	}
	if !(v.Margin >= 0 && v.Margin < 0.5) {
		return fmt.Errorf("%w: margin %g outside [0, 0.5)", ErrInvalidViewport, v.Margin)
	}
	if !finite(v.PixelRatio) {
		return fmt.Errorf("%w: pixel ratio %g", ErrInvalidViewport, v.PixelRatio)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// StrokeStyle is the single color and width every stroke is drawn with.
type StrokeStyle struct {
	Color color.RGBA
	Width float64 // logical pixels
}

// Hex returns the stroke color as #rrggbb.
func (s StrokeStyle) Hex() string {
	return Hex(s.Color)
}

// Opacity returns the stroke alpha in [0, 1].
func (s StrokeStyle) Opacity() float64 {
	return float64(s.Color.A) / 255
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"navy":    {0, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"magenta": {255, 0, 255, 255},
	"cyan":    {0, 255, 255, 255},
}

// ParseColor parses "#rgb", "#rrggbb" or a basic CSS color name.
// "transparent" yields the zero color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// Config is the immutable configuration of one render request.
type Config struct {
	Viewport Viewport
	Style    StrokeStyle

	Animated   bool
	ShowMarker bool
	BatchSize  int // segments per tick, 0 means DefaultBatchSize

	MarkerRadius float64 // logical pixels, 0 means DefaultMarkerRadius
	MarkerColor  color.RGBA
	KeepMarker   bool // leave the marker at the final point on completion
}

// DefaultConfig returns the browser page defaults:
// 2% margin, a one pixel black stroke, batches of 200 segments and a red
// marker of radius 5.
func DefaultConfig(width, height float64) Config {
	return Config{
		Viewport:     Viewport{Width: width, Height: height, Margin: DefaultMargin, PixelRatio: 1},
		Style:        StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: DefaultLineWidth},
		BatchSize:    DefaultBatchSize,
		MarkerRadius: DefaultMarkerRadius,
		MarkerColor:  namedColors["red"],
	}
}

// Validate checks the parts of the configuration that do not depend on the
// point sequence.
func (c Config) Validate() error {
	if err := c.Viewport.Validate(); err != nil {
		return err
	}
	if c.Style.Width < 0 {
		return errors.New("render: negative stroke width")
	}
	if c.BatchSize < 0 {
		return errors.New("render: negative batch size")
	}
	if c.MarkerRadius < 0 {
		return errors.New("render: negative marker radius")
	}
	return nil
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

func (c Config) markerRadius() float64 {
	if c.MarkerRadius <= 0 {
		return DefaultMarkerRadius
	}
	return c.MarkerRadius
}

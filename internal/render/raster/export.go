package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"flourish/internal/render"
)

// WritePNG encodes the composited surface at device resolution.
func (s *Surface) WritePNG(w io.Writer, bg color.Color) error {
	img, err := s.Image(bg)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes the composited surface to path.
func (s *Surface) SavePNG(path string, bg color.Color) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.WritePNG(f, bg)
}

// Film collects animation frames of a surface for GIF export. Hook Frame
// into Session.Run.
type Film struct {
	surface *Surface
	bg      color.Color
	every   int // keep one frame out of every
	delay   int // hundredths of a second per frame

	frames []*image.Paletted
	seen   int
}

// NewFilm records every nth frame of s, each shown for delay hundredths of
// a second. Values below 1 are raised to 1.
func NewFilm(s *Surface, bg color.Color, every, delay int) *Film {
	return &Film{surface: s, bg: bg, every: max(every, 1), delay: max(delay, 1)}
}

// Len returns the number of frames kept so far.
func (f *Film) Len() int { return len(f.frames) }

// Frame snapshots the surface. The final tick is always kept.
func (f *Film) Frame(sess *render.Session) error {
	f.seen++
	if f.seen%f.every != 0 && !sess.State().Terminal() {
		return nil
	}
	return f.Snapshot()
}

// Snapshot unconditionally appends the current surface as a frame.
func (f *Film) Snapshot() error {
	img, err := f.surface.Image(f.bg)
	if err != nil {
		return err
	}
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, image.Point{})
	f.frames = append(f.frames, p)
	return nil
}

// WriteGIF encodes the recorded frames as a looping GIF.
func (f *Film) WriteGIF(w io.Writer) error {
	if len(f.frames) == 0 {
		return fmt.Errorf("raster: no frames recorded")
	}
	anim := &gif.GIF{Image: f.frames, Delay: make([]int, len(f.frames))}
	for i := range anim.Delay {
		anim.Delay[i] = f.delay
	}
	// hold the finished curve
	anim.Delay[len(anim.Delay)-1] = max(f.delay, 100)
	return gif.EncodeAll(w, anim)
}

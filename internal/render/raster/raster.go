// Package raster implements the raster drawing backend by wrapping rasterx:
// strokes accumulate on a persistent RGBA buffer sized to the viewport
// times its pixel ratio, and the marker lives on a second buffer of the
// same size.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"flourish/internal/render"
)

var (
	_ render.Backend     = (*Surface)(nil) // assert interface conformance
	_ render.MarkerLayer = (*overlay)(nil)
)

// Surface is a raster Backend.
type Surface struct {
	ratio float64
	w, h  int // device pixels

	main   *image.RGBA
	soft   *softener
	dasher *rasterx.Dasher // draws on soft.scratch

	top *overlay

	path     path
	disposed bool
}

type overlay struct {
	ratio  float64
	img    *image.RGBA
	filler *rasterx.Filler
}

// New returns a cleared surface for vp.
func New(vp render.Viewport) (*Surface, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	ratio := vp.Ratio()
	w, h := int(math.Ceil(vp.Width*ratio)), int(math.Ceil(vp.Height*ratio))
	main := image.NewRGBA(image.Rect(0, 0, w, h))
	top := image.NewRGBA(main.Bounds())
	soft := newSoftener(main.Bounds(), ratio)
	return &Surface{
		ratio:  ratio,
		w:      w,
		h:      h,
		main:   main,
		soft:   soft,
		dasher: rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, soft.scratch, soft.scratch.Bounds())),
		top: &overlay{
			ratio:  ratio,
			img:    top,
			filler: rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, top, top.Bounds())),
		},
	}, nil
}

// Size returns the buffer size in device pixels.
func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Check() error {
	if s.disposed {
		return render.ErrSurfaceUnavailable
	}
	return nil
}

func (s *Surface) ClearSurface() {
	if s.disposed {
		return
	}
	clear(s.main.Pix)
	s.path.reset()
}

func (s *Surface) BeginPath() { s.path.reset() }

func (s *Surface) MoveTo(x, y float64) {
	s.path.moveTo(rasterx.ToFixedP(x*s.ratio, y*s.ratio))
}

func (s *Surface) LineTo(x, y float64) {
	s.path.lineTo(rasterx.ToFixedP(x*s.ratio, y*s.ratio))
}

// StrokePath rasterizes the accumulated path with round caps and joins,
// over a soft shadow in the stroke color. rasterx strokes while the path is
// added, so the style is set first and the recorded path replayed into the
// dasher.
func (s *Surface) StrokePath(style render.StrokeStyle) {
	defer s.path.reset()
	if s.disposed || style.Width <= 0 || style.Color.A == 0 || len(s.path.pts) == 0 {
		return
	}
	width := style.Width * s.ratio
	dirty := s.soft.begin(s.path.bounds(), width)
	if dirty.Empty() {
		return
	}
	s.dasher.Clear()
	s.dasher.SetStroke(fixed.Int26_6(width*64), 0,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	s.path.addTo(s.dasher)
	s.dasher.SetColor(style.Color)
	s.dasher.Draw()
	s.dasher.Clear()
	s.soft.composite(s.main, dirty, style.Color)
}

func (s *Surface) Overlay() (render.MarkerLayer, error) {
	if s.disposed {
		return nil, render.ErrSurfaceUnavailable
	}
	return s.top, nil
}

// Dispose drops the buffers.
func (s *Surface) Dispose() error {
	s.disposed = true
	s.main, s.top, s.dasher, s.soft = nil, nil, nil, nil
	s.path.reset()
	return nil
}

func (o *overlay) ClearMarker() {
	clear(o.img.Pix)
}

func (o *overlay) FillDisc(cx, cy, r float64, c color.RGBA) {
	o.filler.Clear()
	rasterx.AddCircle(cx*o.ratio, cy*o.ratio, r*o.ratio, o.filler)
	o.filler.SetColor(c)
	o.filler.Draw()
	o.filler.Clear()
}

// Image composites the marker layer over the strokes on a bg background,
// at device resolution. A transparent bg keeps the alpha channel.
func (s *Surface) Image(bg color.Color) (*image.RGBA, error) {
	if s.disposed {
		return nil, render.ErrSurfaceUnavailable
	}
	if bg == nil {
		bg = color.Transparent
	}
	out := image.NewRGBA(s.main.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), s.main, image.Point{}, draw.Over)
	draw.Draw(out, out.Bounds(), s.top.img, image.Point{}, draw.Over)
	return out, nil
}

// Scaled returns Image resampled to w x h, typically the logical viewport
// size when the surface was allocated at a higher pixel ratio.
func (s *Surface) Scaled(bg color.Color, w, h int) (*image.RGBA, error) {
	img, err := s.Image(bg)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		return img, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out, nil
}

package raster

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"

	"flourish/internal/geom"
	"flourish/internal/render"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func newSurface(t *testing.T, w, h, ratio float64) *Surface {
	t.Helper()
	s, err := New(render.Viewport{Width: w, Height: h, PixelRatio: ratio})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func TestNewSizesByPixelRatio(t *testing.T) {
	s := newSurface(t, 100, 50, 2)
	w, h := s.Size()
	diff(t, [2]int{200, 100}, [2]int{w, h})

	if _, err := New(render.Viewport{Width: 0, Height: 10}); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("got %v, want ErrSurfaceUnavailable", err)
	}
}

func TestStrokeLine(t *testing.T) {
	s := newSurface(t, 100, 100, 1)
	s.BeginPath()
	s.MoveTo(10, 50)
	s.LineTo(90, 50)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: 4})

	img, err := s.Image(color.Transparent)
	if err != nil {
		t.Fatal(err)
	}
	if a := alphaAt(img, 50, 50); a < 200 {
		t.Errorf("alpha on the line = %d, want opaque", a)
	}
	if a := alphaAt(img, 50, 10); a != 0 {
		t.Errorf("alpha off the line = %d, want 0", a)
	}
	// round cap reaches past the end point
	if a := alphaAt(img, 91, 50); a == 0 {
		t.Error("no round cap past the end point")
	}
}

func TestStrokeScaledByRatio(t *testing.T) {
	s := newSurface(t, 50, 50, 2)
	s.BeginPath()
	s.MoveTo(5, 25)
	s.LineTo(45, 25)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: 2})

	img, err := s.Image(color.Transparent)
	if err != nil {
		t.Fatal(err)
	}
	if a := alphaAt(img, 50, 50); a < 200 {
		t.Errorf("alpha at device (50, 50) = %d, want opaque", a)
	}
}

func TestZeroWidthDrawsNothing(t *testing.T) {
	s := newSurface(t, 20, 20, 1)
	s.MoveTo(0, 0)
	s.LineTo(20, 20)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}})
	for _, b := range s.main.Pix {
		if b != 0 {
			t.Fatal("zero width stroke drew pixels")
		}
	}
}

func TestClearSurfaceKeepsOverlay(t *testing.T) {
	s := newSurface(t, 40, 40, 1)
	s.MoveTo(0, 20)
	s.LineTo(40, 20)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: 3})
	layer, err := s.Overlay()
	if err != nil {
		t.Fatal(err)
	}
	layer.FillDisc(20, 10, 4, color.RGBA{255, 0, 0, 255})

	s.ClearSurface()
	img, _ := s.Image(color.Transparent)
	if a := alphaAt(img, 5, 20); a != 0 {
		t.Errorf("stroke survived clear, alpha %d", a)
	}
	diff(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(20, 10))

	layer.ClearMarker()
	img, _ = s.Image(color.Transparent)
	diff(t, color.RGBA{}, img.RGBAAt(20, 10))
}

func TestImageBackground(t *testing.T) {
	s := newSurface(t, 10, 10, 1)
	img, err := s.Image(color.White)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(3, 3))
}

func TestScaled(t *testing.T) {
	s := newSurface(t, 30, 20, 2)
	img, err := s.Scaled(color.White, 30, 20)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, image.Rect(0, 0, 30, 20), img.Bounds())
}

func TestDispose(t *testing.T) {
	s := newSurface(t, 10, 10, 1)
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}
	if err := s.Check(); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("Check after Dispose: %v", err)
	}
	if _, err := s.Overlay(); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("Overlay after Dispose: %v", err)
	}
	if _, err := s.Image(nil); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("Image after Dispose: %v", err)
	}
}

func TestDrawAfterDispose(t *testing.T) {
	s := newSurface(t, 10, 10, 1)
	s.Dispose()
	s.ClearSurface()
	s.BeginPath()
	s.MoveTo(0, 0)
	s.LineTo(10, 10)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: 2})
}

func TestTickAfterDispose(t *testing.T) {
	s := newSurface(t, 40, 40, 1)
	cfg := render.DefaultConfig(40, 40)
	cfg.Animated = true
	cfg.ShowMarker = true
	cfg.BatchSize = 1
	pts := geom.Points{curve.Pt(0, 0), curve.Pt(1, 1), curve.Pt(2, 0)}
	sess, err := render.NewRenderer().Render(s, pts, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, render.Running, sess.Tick())
	s.Dispose()
	diff(t, render.Failed, sess.Tick())
	if !errors.Is(sess.Err(), render.ErrSurfaceUnavailable) {
		t.Errorf("Err = %v", sess.Err())
	}
}

func TestSoftEdge(t *testing.T) {
	s := newSurface(t, 100, 100, 1)
	s.MoveTo(10, 50)
	s.LineTo(90, 50)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: 2})

	img, _ := s.Image(color.Transparent)
	// the stroke covers rows 49 and 50; the halo fades out over a few more
	if a := alphaAt(img, 50, 52); a == 0 {
		t.Error("no halo next to the stroke")
	}
	if a, b := alphaAt(img, 50, 52), alphaAt(img, 50, 49); a >= b {
		t.Errorf("halo alpha %d not below stroke alpha %d", a, b)
	}
	if a := alphaAt(img, 50, 60); a != 0 {
		t.Errorf("halo reaches row 60, alpha %d", a)
	}
}

func TestNewRejectsNonFiniteViewport(t *testing.T) {
	for _, vp := range []render.Viewport{
		{Width: math.Inf(1), Height: 10},
		{Width: 10, Height: 10, Margin: math.NaN()},
		{Width: 10, Height: 10, PixelRatio: math.Inf(1)},
	} {
		if _, err := New(vp); !errors.Is(err, render.ErrInvalidViewport) {
			t.Errorf("New(%+v) = %v", vp, err)
		}
	}
}

func TestWritePNG(t *testing.T) {
	s := newSurface(t, 16, 8, 1)
	var buf bytes.Buffer
	if err := s.WritePNG(&buf, color.White); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, image.Rect(0, 0, 16, 8), img.Bounds())
}

func TestRenderAnimatedFilm(t *testing.T) {
	s := newSurface(t, 64, 64, 1)
	pts := make(geom.Points, 21)
	for i := range pts {
		pts[i] = curve.Pt(float64(i), float64(i*i))
	}
	cfg := render.DefaultConfig(64, 64)
	cfg.Animated = true
	cfg.ShowMarker = true
	cfg.BatchSize = 4

	sess, err := render.NewRenderer().Render(s, pts, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	film := NewFilm(s, color.White, 2, 5)
	state, err := sess.Run(context.Background(), film.Frame)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, render.Completed, state)
	// 20 segments in batches of 4: ticks 2 and 4 plus the final fifth
	diff(t, 3, film.Len())

	var buf bytes.Buffer
	if err := film.WriteGIF(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 3, len(g.Image))
}

func TestFilmEmpty(t *testing.T) {
	film := NewFilm(newSurface(t, 4, 4, 1), nil, 1, 1)
	if err := film.WriteGIF(new(bytes.Buffer)); err == nil {
		t.Error("want error for empty film")
	}
}

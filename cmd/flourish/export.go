package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flourish/internal/geom"
	"flourish/internal/render"
	"flourish/internal/render/raster"
	"flourish/internal/render/vector"
)

// exportJob renders one curve into a file. Animated renders run to
// completion first; GIF exports are always animated.
type exportJob struct {
	path       string
	curve      geom.Curve
	cfg        render.Config
	bg         color.RGBA
	frameEvery int
	delay      int
}

func (j exportJob) run(ctx context.Context) error {
	r := render.NewRenderer()
	switch ext := strings.ToLower(filepath.Ext(j.path)); ext {
	case ".svg":
		s, err := vector.New(j.cfg.Viewport)
		if err != nil {
			return err
		}
		defer s.Dispose()
		s.SetBackground(j.bg)
		if err := j.draw(ctx, r, s, nil); err != nil {
			return err
		}
		return s.Save(j.path)
	case ".png":
		s, err := raster.New(j.cfg.Viewport)
		if err != nil {
			return err
		}
		defer s.Dispose()
		if err := j.draw(ctx, r, s, nil); err != nil {
			return err
		}
		return s.SavePNG(j.path, j.bg)
	case ".gif":
		s, err := raster.New(j.cfg.Viewport)
		if err != nil {
			return err
		}
		defer s.Dispose()
		j.cfg.Animated = true
		film := raster.NewFilm(s, j.bg, j.frameEvery, j.delay)
		if err := j.draw(ctx, r, s, film.Frame); err != nil {
			return err
		}
		if film.Len() == 0 {
			if err := film.Snapshot(); err != nil {
				return err
			}
		}
		return writeFile(j.path, film.WriteGIF)
	default:
		return fmt.Errorf("unsupported output %q: want .png, .svg or .gif", ext)
	}
}

func (j exportJob) draw(ctx context.Context, r *render.Renderer, b render.Backend, frame func(*render.Session) error) error {
	s, err := r.Render(b, j.curve.Points, j.curve.Bounds, j.cfg)
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	_, err = s.Run(ctx, frame)
	return err
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// Package render maps curve points onto a drawing surface and draws them,
// either at once or as a progressive animation that a newer request
// cancels.
//
// The surface is abstracted by Backend; see the raster and vector
// subpackages for the concrete variants.
package render

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"flourish/internal/geom"
)

// Renderer issues render requests against backends. It owns the latest
// session token; starting any render supersedes the animation before it.
type Renderer struct {
	latest atomic.Uint64
	log    *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger. Without it the package logger
// (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// NewRenderer returns a renderer with no session issued yet.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return Logger()
}

// Latest returns the most recently issued token.
func (r *Renderer) Latest() Token {
	return Token(r.latest.Load())
}

// Cancel supersedes the running animation, if any, without drawing.
func (r *Renderer) Cancel() Token {
	return Token(r.latest.Add(1))
}

// Render draws pts on b. bounds may be nil, in which case they are derived
// from pts.
//
// All errors (ErrEmptySequence, ErrSurfaceUnavailable, ErrDegenerateBounds
// and invalid configuration) are reported before anything is drawn or
// cancelled. Otherwise the surface is cleared and the curve is drawn in one
// stroke, or, with cfg.Animated, a running Session is returned for the host
// to tick. A static render returns a nil Session.
//
// A single point draws nothing and needs no bounds.
func (r *Renderer) Render(b Backend, pts geom.Points, bounds *geom.BBox, cfg Config) (*Session, error) {
	log := r.logger()
	t, overlay, err := r.validate(b, pts, bounds, cfg)
	if err != nil {
		log.Warn("render rejected", "points", len(pts), "err", err)
		return nil, err
	}
	log.Info("render", "points", len(pts), "animated", cfg.Animated, "marker", cfg.ShowMarker,
		"width", cfg.Viewport.Width, "height", cfg.Viewport.Height)
	if cfg.Animated {
		return r.start(b, overlay, pts, t, cfg), nil
	}
	r.Cancel()
	b.ClearSurface()
	if overlay != nil {
		ClearMarker(overlay)
	}
	DrawPolyline(b, pts, t, cfg.Style)
	return nil, nil
}

// Start begins an animation of pts with an already computed transform.
// The new session is Running (Completed for fewer than two points) and
// has drawn nothing yet; the previous session is superseded.
func (r *Renderer) Start(b Backend, pts geom.Points, t Transform, cfg Config) (*Session, error) {
	if len(pts) == 0 {
		return nil, ErrEmptySequence
	}
	overlay, err := surfaces(b, cfg)
	if err != nil {
		return nil, err
	}
	return r.start(b, overlay, pts, t, cfg), nil
}

func (r *Renderer) validate(b Backend, pts geom.Points, bounds *geom.BBox, cfg Config) (Transform, MarkerLayer, error) {
	if len(pts) == 0 {
		return Transform{}, nil, ErrEmptySequence
	}
	overlay, err := surfaces(b, cfg)
	if err != nil {
		return Transform{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return Transform{}, nil, err
	}
	// a single point draws nothing, so its zero extent is not an error
	if len(pts) < 2 {
		return Transform{}, overlay, nil
	}
	t, err := ComputeTransform(pts, cfg.Viewport, bounds)
	if err != nil {
		return Transform{}, nil, err
	}
	return t, overlay, nil
}

// surfaces checks the main surface and fetches the marker layer. A missing
// layer is an error only when the marker is requested.
func surfaces(b Backend, cfg Config) (MarkerLayer, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: no backend", ErrSurfaceUnavailable)
	}
	if err := b.Check(); err != nil {
		return nil, err
	}
	overlay, err := b.Overlay()
	if err != nil {
		if cfg.ShowMarker && cfg.Animated {
			return nil, fmt.Errorf("marker layer: %w", err)
		}
		return nil, nil
	}
	return overlay, nil
}

func (r *Renderer) start(b Backend, overlay MarkerLayer, pts geom.Points, t Transform, cfg Config) *Session {
	s := &Session{
		r:           r,
		token:       Token(r.latest.Add(1)),
		log:         r.logger(),
		backend:     b,
		points:      pts,
		t:           t,
		style:       cfg.Style,
		batch:       cfg.batchSize(),
		radius:      cfg.markerRadius(),
		markerColor: cfg.MarkerColor,
		keepMarker:  cfg.KeepMarker,
		state:       Running,
	}
	b.ClearSurface()
	if overlay != nil {
		ClearMarker(overlay)
		if cfg.ShowMarker {
			s.marker = overlay
		}
	}
	s.log.Debug("animation started", "token", s.token, "points", len(pts), "batch", s.batch, "marker", s.marker != nil)
	if len(pts) < 2 {
		s.complete()
	}
	return s
}

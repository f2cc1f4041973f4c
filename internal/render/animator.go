package render

import (
	"context"
	"image/color"
	"log/slog"

	"flourish/internal/geom"
)

// State is the lifecycle state of an animation session.
type State int

const (
	Idle State = iota
	Running
	Completed
	Superseded
	Failed // the backend became unavailable mid-animation
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Superseded:
		return "superseded"
	case Failed:
		return "failed"
	default:
		return "<unknown State>"
	}
}

// Terminal reports whether no further ticks will draw anything.
func (s State) Terminal() bool {
	return s == Completed || s == Superseded || s == Failed
}

// Token identifies an animation session. Tokens are issued in increasing
// order by one Renderer; only the latest one may draw.
type Token uint64

// Session draws a point sequence progressively, a batch of segments per
// tick. Ticks are driven by the host (a frame callback, a timer, a loop);
// the session never schedules itself.
//
// A session draws only while its token is the renderer's latest. Once a
// newer session is started, the next tick of the older one clears the
// marker and ends it as Superseded without drawing. A tick that finds the
// backend disposed ends the session as Failed, also without drawing.
type Session struct {
	r     *Renderer
	token Token
	log   *slog.Logger

	backend Backend
	points  geom.Points
	t       Transform
	style   StrokeStyle
	batch   int

	marker      MarkerLayer // nil when the marker is disabled
	radius      float64
	markerColor color.RGBA
	keepMarker  bool

	cursor int
	ticks  int
	state  State
	err    error // set with Failed
}

// Token returns the identity the session was started with.
func (s *Session) Token() Token { return s.token }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Cursor returns the index of the last fully drawn point.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the number of points in the sequence.
func (s *Session) Len() int { return len(s.points) }

// Ticks returns how many ticks the session has processed while running.
func (s *Session) Ticks() int { return s.ticks }

// BatchSize returns the number of segments drawn per tick.
func (s *Session) BatchSize() int { return s.batch }

// Err returns why the session failed, or nil.
func (s *Session) Err() error { return s.err }

// Transform returns the mapping the session draws with.
func (s *Session) Transform() Transform { return s.t }

// Progress returns the drawn fraction of the curve in [0, 1].
func (s *Session) Progress() float64 {
	if len(s.points) < 2 {
		return 1
	}
	return float64(s.cursor) / float64(len(s.points)-1)
}

// Tick advances the animation by one batch and returns the resulting state.
// Ticking a session in a terminal state does nothing.
func (s *Session) Tick() State {
	if s.state != Running {
		return s.state
	}
	s.ticks++
	if latest := s.r.Latest(); latest != s.token {
		s.state = Superseded
		if s.marker != nil {
			ClearMarker(s.marker)
		}
		s.log.Debug("animation superseded", "token", s.token, "latest", latest, "cursor", s.cursor)
		return s.state
	}
	if err := s.backend.Check(); err != nil {
		s.state = Failed
		s.err = err
		s.log.Warn("animation failed", "token", s.token, "cursor", s.cursor, "err", err)
		return s.state
	}
	last := len(s.points) - 1
	for n := 0; n < s.batch && s.cursor < last; n++ {
		drawSegment(s.backend, s.points[s.cursor], s.points[s.cursor+1], s.t, s.style)
		s.cursor++
		if s.marker != nil {
			DrawMarker(s.marker, s.points[s.cursor], s.t, s.radius, s.markerColor)
		}
	}
	if s.cursor >= last {
		s.complete()
	}
	return s.state
}

func (s *Session) complete() {
	s.state = Completed
	if s.marker != nil && !s.keepMarker {
		ClearMarker(s.marker)
	}
	s.log.Debug("animation completed", "token", s.token, "ticks", s.ticks, "points", len(s.points))
}

// Run ticks the session until it reaches a terminal state, calling frame
// after every tick. It stops early when ctx is done or frame fails; the
// session is left running in that case. A Failed session returns the
// backend's error.
func (s *Session) Run(ctx context.Context, frame func(*Session) error) (State, error) {
	for !s.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return s.state, err
		}
		if s.Tick() == Failed {
			return s.state, s.err
		}
		if frame != nil {
			if err := frame(s); err != nil {
				return s.state, err
			}
		}
	}
	return s.state, s.err
}

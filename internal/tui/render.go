package tui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flourish/internal/geom"
	"flourish/internal/render"
	"flourish/internal/render/raster"
	"flourish/internal/render/vector"
)

// frameMsg asks the session it carries for one more batch. A superseded
// session ends on it without drawing.
type frameMsg struct {
	session *render.Session
}

func frameCmd(s *render.Session, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{session: s} })
}

func (m *Model) onFrame(msg frameMsg) tea.Cmd {
	s := msg.session
	switch s.Tick() {
	case render.Running:
		return frameCmd(s, m.frame)
	case render.Completed:
		if s == m.session {
			m.status = fmt.Sprintf("animation done: %d points in %d frames", s.Len(), s.Ticks())
		}
	case render.Failed:
		if s == m.session {
			m.status = "animation stopped: " + s.Err().Error()
		}
	}
	return nil
}

// resize replaces the canvas to fit the window and redraws.
func (m *Model) resize() tea.Cmd {
	w, h := m.layout()
	if m.canvas != nil {
		if m.canvas.buf.w == w && m.canvas.buf.h == h {
			return nil
		}
		m.canvas.Dispose()
	}
	m.canvas = newCanvas(w, h)
	return m.render()
}

// render draws the loaded curve on the canvas, starting an animation when
// configured.
func (m *Model) render() tea.Cmd {
	if !m.loaded || m.canvas == nil {
		return nil
	}
	cfg := m.cfg
	cfg.Viewport = m.canvas.viewport(m.cfg.Viewport.Margin)
	s, err := m.renderer.Render(m.canvas, m.curve.Points, m.curve.Bounds, cfg)
	if err != nil {
		m.session = nil
		m.status = "render error: " + err.Error()
		return nil
	}
	m.session = s
	if s == nil {
		m.status = fmt.Sprintf("rendered %d points", len(m.curve.Points))
		return nil
	}
	if s.State().Terminal() {
		m.status = fmt.Sprintf("rendered %d points", s.Len())
		return nil
	}
	m.status = fmt.Sprintf("animating %d points, %d per frame", s.Len(), s.BatchSize())
	return frameCmd(s, m.frame)
}

// strokeColor maps the stroke color to the terminal. Black, the page
// default, becomes the regular foreground.
func (m Model) strokeColor() lipgloss.TerminalColor {
	c := m.cfg.Style.Color
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return baseFg
	}
	return lipgloss.Color(render.Hex(c))
}

func (m Model) exportBase() string {
	name := "pasted"
	if m.selPath != "" {
		name = strings.TrimSuffix(filepath.Base(m.selPath), filepath.Ext(m.selPath))
	}
	return filepath.Join(m.cwd, name)
}

// export writes the full curve as ext (".png" or ".svg"). It renders with
// its own Renderer so the terminal animation keeps running.
func (m *Model) export(ext string) {
	if !m.loaded {
		m.status = "nothing to export"
		return
	}
	bg, err := render.ParseColor(m.exportBg)
	if err != nil {
		m.status = "export: " + err.Error()
		return
	}
	cfg := m.cfg
	cfg.Animated = false
	cfg.Viewport = render.Viewport{Width: m.exportW, Height: m.exportH, Margin: m.cfg.Viewport.Margin, PixelRatio: m.cfg.Viewport.PixelRatio}
	path := m.exportBase() + ext
	if err := exportFile(path, m.curve.Points, m.curve.Bounds, cfg, bg); err != nil {
		m.status = "export: " + err.Error()
		return
	}
	m.status = "exported " + path
}

func exportFile(path string, pts geom.Points, bounds *geom.BBox, cfg render.Config, bg color.RGBA) error {
	r := render.NewRenderer()
	switch filepath.Ext(path) {
	case ".svg":
		s, err := vector.New(cfg.Viewport)
		if err != nil {
			return err
		}
		defer s.Dispose()
		s.SetBackground(bg)
		if _, err := r.Render(s, pts, bounds, cfg); err != nil {
			return err
		}
		return s.Save(path)
	default:
		s, err := raster.New(cfg.Viewport)
		if err != nil {
			return err
		}
		defer s.Dispose()
		if _, err := r.Render(s, pts, bounds, cfg); err != nil {
			return err
		}
		return s.SavePNG(path, bg)
	}
}

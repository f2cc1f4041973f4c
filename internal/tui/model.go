package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"flourish/internal/geom"
	"flourish/internal/render"
)

// DefaultFrame is the tick interval of the animation, about one display
// frame.
const DefaultFrame = time.Second / 60

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	curve  geom.Curve
	loaded bool

	// Rendering
	cfg      render.Config
	renderer *render.Renderer
	canvas   *canvas
	session  *render.Session
	frame    time.Duration

	// export size in logical pixels
	exportW, exportH float64
	exportBg         string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// curve info table
	showInfo bool
	tbl      table.Model
}

// Option configures a Model.
type Option func(*Model)

// WithFrame sets the animation tick interval.
func WithFrame(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frame = d
		}
	}
}

// WithExport sets the size and background of PNG and SVG exports.
func WithExport(w, h float64, bg string) Option {
	return func(m *Model) {
		m.exportW, m.exportH, m.exportBg = w, h, bg
	}
}

// New returns a model rendering with cfg. The viewport in cfg is replaced
// by the terminal size; its margin is kept.
func New(cfg render.Config, opts ...Option) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "flourish ready",
		cfg:         cfg,
		renderer:    render.NewRenderer(),
		frame:       DefaultFrame,
		exportW:     800,
		exportH:     800,
		exportBg:    "white",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Curves"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste points (one \"x y\" per line) or WKT. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(
		table.WithColumns([]table.Column{{Title: "field", Width: 12}, {Title: "value", Width: 40}}),
		table.WithFocused(true),
	)
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a curve file at launch. It is drawn on the first
// window size message.
func NewWithPath(cfg render.Config, path string, opts ...Option) Model {
	m := New(cfg, opts...)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Package vector implements the vector drawing backend: every stroke
// becomes an SVG path element of a retained scene graph that is written
// out on demand.
package vector

import (
	"bytes"
	"encoding/xml"
	"image/color"
	"io"
	"os"
	"strings"

	"flourish/internal/render"
)

var (
	_ render.Backend     = (*Surface)(nil) // assert interface conformance
	_ render.MarkerLayer = (*markerLayer)(nil)
	_ io.WriterTo        = (*Surface)(nil)
)

// Surface is an SVG Backend sized in logical pixels.
type Surface struct {
	doc      *document
	d        strings.Builder // current path data
	marker   *markerLayer
	disposed bool
}

type markerLayer struct {
	g *group
}

// New returns an empty document for vp. Its defs hold the stroke filter.
func New(vp render.Viewport) (*Surface, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	doc := &document{
		NS:      svgNS,
		Width:   num(vp.Width),
		Height:  num(vp.Height),
		ViewBox: "0 0 " + num(vp.Width) + " " + num(vp.Height),
		Defs:    defs{Filters: []filter{softFilter()}},
		Groups:  []group{curveGroup: {ID: "curve"}, markerGroup: {ID: "marker"}},
	}
	return &Surface{doc: doc, marker: &markerLayer{g: &doc.Groups[markerGroup]}}, nil
}

// SetBackground fills the document with c. A transparent c removes the
// fill.
func (s *Surface) SetBackground(c color.RGBA) {
	if s.disposed {
		return
	}
	if c.A == 0 {
		s.doc.Background = nil
		return
	}
	s.doc.Background = &rect{Width: "100%", Height: "100%", Fill: render.Hex(c)}
}

// Paths returns the number of path elements drawn since the last clear.
func (s *Surface) Paths() int {
	if s.disposed {
		return 0
	}
	return len(s.doc.Groups[curveGroup].Paths)
}

func (s *Surface) Check() error {
	if s.disposed {
		return render.ErrSurfaceUnavailable
	}
	return nil
}

// ClearSurface drops the drawn paths. Defs stay in place.
func (s *Surface) ClearSurface() {
	if s.disposed {
		return
	}
	s.doc.Groups[curveGroup].Paths = nil
	s.d.Reset()
}

func (s *Surface) BeginPath() { s.d.Reset() }

func (s *Surface) MoveTo(x, y float64) { s.cmd('M', x, y) }

func (s *Surface) LineTo(x, y float64) {
	if s.d.Len() == 0 {
		s.cmd('M', x, y)
		return
	}
	s.cmd('L', x, y)
}

func (s *Surface) cmd(op byte, x, y float64) {
	if s.d.Len() > 0 {
		s.d.WriteByte(' ')
	}
	s.d.WriteByte(op)
	s.d.WriteByte(' ')
	s.d.WriteString(num(x))
	s.d.WriteByte(' ')
	s.d.WriteString(num(y))
}

func (s *Surface) StrokePath(style render.StrokeStyle) {
	if s.disposed || s.d.Len() == 0 {
		return
	}
	s.doc.Groups[curveGroup].Paths = append(s.doc.Groups[curveGroup].Paths, pathElem{
		D:              s.d.String(),
		Fill:           "none",
		Stroke:         style.Hex(),
		StrokeOpacity:  opacity(style.Color.A),
		StrokeWidth:    num(style.Width),
		StrokeLinejoin: "round",
		StrokeLinecap:  "round",
		ShapeRendering: "geometricPrecision",
		Filter:         "url(#" + filterID + ")",
	})
	s.d.Reset()
}

func (s *Surface) Overlay() (render.MarkerLayer, error) {
	if s.disposed {
		return nil, render.ErrSurfaceUnavailable
	}
	return s.marker, nil
}

func (s *Surface) Dispose() error {
	s.disposed = true
	s.doc, s.marker = nil, nil
	s.d.Reset()
	return nil
}

func (m *markerLayer) ClearMarker() { m.g.Circles = nil }

func (m *markerLayer) FillDisc(cx, cy, r float64, c color.RGBA) {
	m.g.Circles = []circleElem{{
		Cx:          num(cx),
		Cy:          num(cy),
		R:           num(r),
		Fill:        render.Hex(c),
		FillOpacity: opacity(c.A),
	}}
}

// WriteTo writes the document, marker included.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	if s.disposed {
		return 0, render.ErrSurfaceUnavailable
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(s.doc); err != nil {
		return 0, err
	}
	buf.WriteByte('\n')
	return buf.WriteTo(w)
}

// Save writes the document to path.
func (s *Surface) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = s.WriteTo(f)
	return err
}

package vector

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"strings"
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

func newSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := New(render.Viewport{Width: 100, Height: 100, Margin: 0.02})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func encode(t *testing.T, s *Surface) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2, "2"},
		{98.5, "98.5"},
		{1.0 / 3, "0.333"},
		{-0.0001, "0"},
		{-12.25, "-12.25"},
	}
	for _, tt := range tests {
		diff(t, tt.want, num(tt.in))
	}
}

func TestStrokePathData(t *testing.T) {
	s := newSurface(t)
	s.BeginPath()
	s.MoveTo(2, 2)
	s.LineTo(98, 98)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 0, 255}, Width: 1})

	p := s.doc.Groups[curveGroup].Paths
	if len(p) != 1 {
		t.Fatalf("got %d paths, want 1", len(p))
	}
	diff(t, pathElem{
		D:              "M 2 2 L 98 98",
		Fill:           "none",
		Stroke:         "#000000",
		StrokeWidth:    "1",
		StrokeLinejoin: "round",
		StrokeLinecap:  "round",
		ShapeRendering: "geometricPrecision",
		Filter:         "url(#flourish-soft)",
	}, p[0])
}

func TestEmptyPathIgnored(t *testing.T) {
	s := newSurface(t)
	s.BeginPath()
	s.StrokePath(render.StrokeStyle{Width: 1})
	diff(t, 0, s.Paths())
}

func TestClearSurfaceKeepsDefs(t *testing.T) {
	s := newSurface(t)
	s.MoveTo(0, 0)
	s.LineTo(1, 1)
	s.StrokePath(render.StrokeStyle{Width: 1})
	s.ClearSurface()
	diff(t, 0, s.Paths())

	out := encode(t, s)
	for _, want := range []string{
		`<filter id="flourish-soft">`,
		`<feGaussianBlur in="SourceGraphic" stdDeviation="0.5" result="blur">`,
		`<feFuncA type="linear" slope="1.2">`,
		`<feGaussianBlur in="SourceAlpha" stdDeviation="2" result="shadow">`,
		`<feComposite in="sharp" in2="shadow" operator="over">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<path") {
		t.Error("cleared paths still written")
	}
}

func TestMarkerLayer(t *testing.T) {
	s := newSurface(t)
	layer, err := s.Overlay()
	if err != nil {
		t.Fatal(err)
	}
	layer.FillDisc(10, 20, 5, color.RGBA{255, 0, 0, 255})
	layer.ClearMarker()
	layer.FillDisc(30, 40, 5, color.RGBA{255, 0, 0, 128})
	diff(t, []circleElem{{Cx: "30", Cy: "40", R: "5", Fill: "#ff0000", FillOpacity: "0.502"}},
		s.doc.Groups[markerGroup].Circles)

	s.ClearSurface()
	diff(t, 1, len(s.doc.Groups[markerGroup].Circles))
}

func TestDocumentIsWellFormed(t *testing.T) {
	s := newSurface(t)
	s.SetBackground(color.RGBA{255, 255, 255, 255})
	s.MoveTo(1, 2)
	s.LineTo(3, 4)
	s.StrokePath(render.StrokeStyle{Color: color.RGBA{0, 0, 255, 255}, Width: 2})

	var got struct {
		ViewBox string `xml:"viewBox,attr"`
		Rect    struct {
			Fill string `xml:"fill,attr"`
		} `xml:"rect"`
		Groups []struct {
			ID    string `xml:"id,attr"`
			Paths []struct {
				D string `xml:"d,attr"`
			} `xml:"path"`
		} `xml:"g"`
	}
	if err := xml.Unmarshal([]byte(encode(t, s)), &got); err != nil {
		t.Fatal(err)
	}
	diff(t, "0 0 100 100", got.ViewBox)
	diff(t, "#ffffff", got.Rect.Fill)
	if len(got.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(got.Groups))
	}
	diff(t, "curve", got.Groups[0].ID)
	diff(t, "marker", got.Groups[1].ID)
	diff(t, "M 1 2 L 3 4", got.Groups[0].Paths[0].D)
}

func TestRenderStatic(t *testing.T) {
	s := newSurface(t)
	pts := geom.Points{curve.Pt(0, 0), curve.Pt(1, 1), curve.Pt(2, 0)}
	cfg := render.DefaultConfig(100, 100)
	if _, err := render.NewRenderer().Render(s, pts, nil, cfg); err != nil {
		t.Fatal(err)
	}
	diff(t, 1, s.Paths())
	diff(t, "M 2 2 L 50 98 L 98 2", s.doc.Groups[curveGroup].Paths[0].D)
}

func TestDispose(t *testing.T) {
	s := newSurface(t)
	if err := s.Dispose(); err != nil {
		t.Fatal(err)
	}
	if err := s.Check(); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("Check after Dispose: %v", err)
	}
	if _, err := s.Overlay(); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("Overlay after Dispose: %v", err)
	}
	if _, err := s.WriteTo(new(bytes.Buffer)); !errors.Is(err, render.ErrSurfaceUnavailable) {
		t.Errorf("WriteTo after Dispose: %v", err)
	}
}

func TestTickAfterDispose(t *testing.T) {
	s := newSurface(t)
	cfg := render.DefaultConfig(100, 100)
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

	s.ClearSurface()
	s.MoveTo(0, 0)
	s.LineTo(1, 1)
	s.StrokePath(render.StrokeStyle{Width: 1})
	diff(t, 0, s.Paths())
}

package render

import (
	"honnef.co/go/curve"

	"flourish/internal/geom"
)

// DrawPolyline strokes pts as one continuous path: a move to the first
// transformed point, a line to each following one and a single commit, so
// joins are consistent along the whole curve. Fewer than two points draw
// nothing.
func DrawPolyline(b Backend, pts geom.Points, t Transform, style StrokeStyle) {
	if len(pts) < 2 {
		return
	}
	sp := t.ApplyAll(pts)
	b.BeginPath()
	b.MoveTo(sp[0].X, sp[0].Y)
	for _, p := range sp[1:] {
		b.LineTo(p.X, p.Y)
	}
	b.StrokePath(style)
}

// drawSegment strokes the single segment a-b as its own path.
func drawSegment(b Backend, a, c curve.Point, t Transform, style StrokeStyle) {
	p, q := t.Apply(a), t.Apply(c)
	b.BeginPath()
	b.MoveTo(p.X, p.Y)
	b.LineTo(q.X, q.Y)
	b.StrokePath(style)
}

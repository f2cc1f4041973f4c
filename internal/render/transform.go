package render

import (
	"fmt"

	"honnef.co/go/curve"

	"flourish/internal/geom"
)

// Transform maps curve space onto surface space. It is computed once per
// render call and never changes afterwards.
type Transform struct {
	Bounds           geom.BBox
	MarginX, MarginY float64
	ScaleX, ScaleY   float64
}

// ComputeTransform derives the mapping that fits bounds into the viewport
// minus its margins. When explicit is nil the bounds are scanned from pts.
func ComputeTransform(pts geom.Points, vp Viewport, explicit *geom.BBox) (Transform, error) {
	if err := vp.Validate(); err != nil {
		return Transform{}, err
	}
	var bb geom.BBox
	if explicit != nil {
		bb = *explicit
	} else {
		var ok bool
		if bb, ok = geom.BoundsOf(pts); !ok {
			return Transform{}, ErrEmptySequence
		}
	}
	if bb.Degenerate() {
		return Transform{}, fmt.Errorf("%w: x [%g, %g], y [%g, %g]", ErrDegenerateBounds, bb.MinX, bb.MaxX, bb.MinY, bb.MaxY)
	}
	t := Transform{
		Bounds:  bb,
		MarginX: vp.Margin * vp.Width,
		MarginY: vp.Margin * vp.Height,
	}
	t.ScaleX = (vp.Width - 2*t.MarginX) / (bb.MaxX - bb.MinX)
	t.ScaleY = (vp.Height - 2*t.MarginY) / (bb.MaxY - bb.MinY)
	return t, nil
}

// Apply maps one curve-space point to surface space.
func (t Transform) Apply(p curve.Point) curve.Point {
	return curve.Pt(
		t.MarginX+(p.X-t.Bounds.MinX)*t.ScaleX,
		t.MarginY+(p.Y-t.Bounds.MinY)*t.ScaleY,
	)
}

// ApplyAll maps every point of pts into a new slice.
func (t Transform) ApplyAll(pts geom.Points) geom.Points {
	out := make(geom.Points, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}

package geom

import (
	"math"

	"honnef.co/go/curve"
)

// BBox is the extent of a curve in curve space.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Degenerate reports whether either axis has no usable extent.
func (b BBox) Degenerate() bool {
	return !(b.MaxX > b.MinX && b.MaxY > b.MinY) ||
		math.IsInf(b.MaxX-b.MinX, 0) || math.IsInf(b.MaxY-b.MinY, 0)
}

// extend grows the box to include pt. The first point seeds the box.
func (b *BBox) extend(pt curve.Point, first bool) {
	if first {
		*b = BBox{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
		return
	}
	if pt.X < b.MinX {
		b.MinX = pt.X
	}
	if pt.Y < b.MinY {
		b.MinY = pt.Y
	}
	if pt.X > b.MaxX {
		b.MaxX = pt.X
	}
	if pt.Y > b.MaxY {
		b.MaxY = pt.Y
	}
}

// Points is an ordered curve-space point sequence.
type Points []curve.Point

// BoundsOf scans pts once and returns their extent. ok is false for an empty sequence.
func BoundsOf(pts Points) (bbox BBox, ok bool) {
	for i, p := range pts {
		bbox.extend(p, i == 0)
	}
	return bbox, len(pts) > 0
}

// Gear describes one spirograph gear as reported by the generator.
type Gear struct {
	GearRadius float64 `json:"gearRadius"`
	PenRadius  float64 `json:"penRadius"`
	Inside     bool    `json:"inside"`
}

// Params is the generator metadata carried alongside a curve. The renderer
// never reads it; hosts display it.
type Params struct {
	Style            string   `json:"style,omitempty"` // harmonograph | spirograph
	Scale            float64  `json:"scale,omitempty"`
	MainCircleRadius float64  `json:"mainCircleRadius,omitempty"`
	Gears            []Gear   `json:"gears,omitempty"`
	Seed             *float64 `json:"seed,omitempty"`
	TimeStep         float64  `json:"dt,omitempty"`
}

// Curve is a minimal container for rendering: the points, the generator's
// bounds when it supplied them, and its metadata.
type Curve struct {
	Points Points
	Bounds *BBox // nil: derive from Points
	Params Params
}

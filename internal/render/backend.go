package render

import "image/color"

// Backend is the drawing target. It is the only place surface specific
// APIs are touched; variants are raster, vector and the terminal preview.
//
// Coordinates are logical surface pixels. A path is begun, extended with
// MoveTo/LineTo and committed with one StrokePath call.
type Backend interface {
	// Check reports ErrSurfaceUnavailable when the main surface is gone.
	Check() error

	ClearSurface()
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	StrokePath(style StrokeStyle)

	// Overlay returns the layer the marker is drawn on, independent from the
	// stroke surface, or ErrSurfaceUnavailable when there is none.
	Overlay() (MarkerLayer, error)

	// Dispose releases the surface. Later calls to Check fail.
	Dispose() error
}

// MarkerLayer is a surface layer that holds at most the marker.
type MarkerLayer interface {
	ClearMarker()
	FillDisc(cx, cy, r float64, c color.RGBA)
}

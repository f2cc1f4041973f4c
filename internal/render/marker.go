package render

import (
	"image/color"

	"honnef.co/go/curve"
)

// DrawMarker moves the marker to p. The layer is cleared first so at most
// one marker is ever visible.
func DrawMarker(layer MarkerLayer, p curve.Point, t Transform, radius float64, c color.RGBA) {
	q := t.Apply(p)
	layer.ClearMarker()
	layer.FillDisc(q.X, q.Y, radius, c)
}

// ClearMarker removes the marker. The stroke surface is not touched.
func ClearMarker(layer MarkerLayer) {
	layer.ClearMarker()
}

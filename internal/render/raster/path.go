package raster

import (
	"image"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// path records move/line commands in device pixels until the stroke style
// is known.
type path struct {
	pts    []fixed.Point26_6
	starts []bool // starts[i]: pts[i] begins a subpath
}

func (p *path) reset() {
	p.pts = p.pts[:0]
	p.starts = p.starts[:0]
}

func (p *path) moveTo(a fixed.Point26_6) {
	p.pts = append(p.pts, a)
	p.starts = append(p.starts, true)
}

// lineTo without a current point starts a subpath at b.
func (p *path) lineTo(b fixed.Point26_6) {
	p.pts = append(p.pts, b)
	p.starts = append(p.starts, len(p.pts) == 1)
}

// addTo replays the path on a rasterx Adder.
func (p *path) addTo(a rasterx.Adder) {
	open := false
	for i, pt := range p.pts {
		if p.starts[i] {
			if open {
				a.Stop(false)
			}
			a.Start(pt)
			open = true
			continue
		}
		a.Line(pt)
	}
	if open {
		a.Stop(false)
	}
}

// bounds returns the pixels the path's points touch.
func (p *path) bounds() image.Rectangle {
	if len(p.pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: image.Pt(p.pts[0].X.Floor(), p.pts[0].Y.Floor())}
	r.Max = r.Min
	for _, pt := range p.pts {
		x0, y0 := pt.X.Floor(), pt.Y.Floor()
		r.Min.X, r.Min.Y = min(r.Min.X, x0), min(r.Min.Y, y0)
		r.Max.X, r.Max.Y = max(r.Max.X, pt.X.Ceil()), max(r.Max.Y, pt.Y.Ceil())
	}
	return r
}

package raster

import (
	"image"
	"image/color"
	"math"
)

// blurPasses box blurs approximate a gaussian; with radius 1 per logical
// pixel the result matches a canvas shadowBlur of 2.
const blurPasses = 3

// softener draws each stroke on a scratch buffer first, then lays a blurred
// copy of its alpha in the stroke color under it.
type softener struct {
	scratch *image.RGBA
	radius  int // device pixels

	alpha, tmp []float32
}

func newSoftener(bounds image.Rectangle, ratio float64) *softener {
	return &softener{
		scratch: image.NewRGBA(bounds),
		radius:  max(1, int(math.Round(ratio))),
	}
}

// begin clears and returns the scratch region a stroke of the given width
// over pathRect can reach, halo included.
func (sf *softener) begin(pathRect image.Rectangle, width float64) image.Rectangle {
	pad := int(math.Ceil(width/2)) + blurPasses*sf.radius + 1
	dirty := pathRect.Inset(-pad).Intersect(sf.scratch.Bounds())
	for y := dirty.Min.Y; y < dirty.Max.Y; y++ {
		i := sf.scratch.PixOffset(dirty.Min.X, y)
		clear(sf.scratch.Pix[i : i+4*dirty.Dx()])
	}
	return dirty
}

// composite blends the halo and then the stroke over dst within r.
func (sf *softener) composite(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	w, h := r.Dx(), r.Dy()
	n := w * h
	if cap(sf.alpha) < n {
		sf.alpha, sf.tmp = make([]float32, n), make([]float32, n)
	}
	a, tmp := sf.alpha[:n], sf.tmp[:n]
	for y := 0; y < h; y++ {
		i := sf.scratch.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < w; x++ {
			a[y*w+x] = float32(sf.scratch.Pix[i+4*x+3]) / 255
		}
	}
	for range blurPasses {
		boxBlur(a, tmp, w, h, sf.radius)
	}

	shadow := [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
	for y := 0; y < h; y++ {
		si := sf.scratch.PixOffset(r.Min.X, r.Min.Y+y)
		di := dst.PixOffset(r.Min.X, r.Min.Y+y)
		for x := 0; x < w; x++ {
			k := min(max(a[y*w+x], 0), 1)
			d := dst.Pix[di+4*x : di+4*x+4 : di+4*x+4]
			s := sf.scratch.Pix[si+4*x : si+4*x+4 : si+4*x+4]
			if k == 0 && s[3] == 0 {
				continue
			}
			// halo, then stroke, each premultiplied "over"
			inv := 1 - shadow[3]*k/255
			sa := float32(s[3]) / 255
			for ch := range 4 {
				v := shadow[ch]*k + float32(d[ch])*inv
				v = float32(s[ch]) + v*(1-sa)
				d[ch] = uint8(min(v+0.5, 255))
			}
		}
	}
}

// boxBlur runs one horizontal and one vertical box pass of radius r over
// the w x h values in a. Values outside the rectangle count as zero.
func boxBlur(a, tmp []float32, w, h, r int) {
	norm := 1 / float32(2*r+1)
	for y := 0; y < h; y++ {
		blurLine(tmp, a, y*w, 1, w, r, norm)
	}
	for x := 0; x < w; x++ {
		blurLine(a, tmp, x, w, h, r, norm)
	}
}

func blurLine(dst, src []float32, off, stride, n, r int, norm float32) {
	var sum float32
	for i := 0; i < min(r, n); i++ {
		sum += src[off+i*stride]
	}
	for i := 0; i < n; i++ {
		if j := i + r; j < n {
			sum += src[off+j*stride]
		}
		dst[off+i*stride] = sum * norm
		if j := i - r; j >= 0 {
			sum -= src[off+j*stride]
		}
	}
}

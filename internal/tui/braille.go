package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flourish/internal/render"
)

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

func (b *brailleBuf) clear() {
	for _, row := range b.m {
		clear(row)
	}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// canvas is the terminal Backend: strokes land on the braille microgrid
// (one logical pixel per micro-pixel) and the marker occupies one cell.
type canvas struct {
	buf      *brailleBuf
	path     [][2]int
	starts   []bool
	color    color.RGBA // last stroke color
	marker   *markerCell
	disposed bool
}

type markerCell struct {
	on     bool
	cx, cy int
	color  color.RGBA
}

var (
	_ render.Backend     = (*canvas)(nil)
	_ render.MarkerLayer = (*markerCell)(nil)
)

func newCanvas(w, h int) *canvas {
	return &canvas{buf: newBrailleBuf(w, h), marker: &markerCell{}}
}

// viewport returns the logical surface the canvas maps to.
func (c *canvas) viewport(margin float64) render.Viewport {
	return render.Viewport{Width: float64(c.buf.w * 2), Height: float64(c.buf.h * 4), Margin: margin, PixelRatio: 1}
}

func (c *canvas) Check() error {
	if c.disposed {
		return render.ErrSurfaceUnavailable
	}
	return nil
}

func (c *canvas) ClearSurface() {
	c.buf.clear()
	c.BeginPath()
}

func (c *canvas) BeginPath() {
	c.path = c.path[:0]
	c.starts = c.starts[:0]
}

func micro(x, y float64) [2]int {
	return [2]int{int(math.Round(x)), int(math.Round(y))}
}

func (c *canvas) MoveTo(x, y float64) {
	c.path = append(c.path, micro(x, y))
	c.starts = append(c.starts, true)
}

func (c *canvas) LineTo(x, y float64) {
	c.path = append(c.path, micro(x, y))
	c.starts = append(c.starts, len(c.path) == 1)
}

// StrokePath plots the path one micro-pixel wide regardless of style width.
func (c *canvas) StrokePath(style render.StrokeStyle) {
	c.color = style.Color
	for i := 1; i < len(c.path); i++ {
		if c.starts[i] {
			continue
		}
		a, b := c.path[i-1], c.path[i]
		c.buf.drawLineMicro(a[0], a[1], b[0], b[1])
	}
	c.BeginPath()
}

func (c *canvas) Overlay() (render.MarkerLayer, error) {
	if c.disposed {
		return nil, render.ErrSurfaceUnavailable
	}
	return c.marker, nil
}

func (c *canvas) Dispose() error {
	c.disposed = true
	c.BeginPath()
	return nil
}

func (mc *markerCell) ClearMarker() { mc.on = false }

// FillDisc marks the cell holding the disc center. The radius is below cell
// resolution.
func (mc *markerCell) FillDisc(cx, cy, r float64, col color.RGBA) {
	p := micro(cx, cy)
	*mc = markerCell{on: true, cx: p[0] / 2, cy: p[1] / 4, color: col}
}

// lines renders the microgrid with the stroke color and the marker glyph.
func (c *canvas) lines(fg lipgloss.TerminalColor) []string {
	raw := c.buf.toLines()
	stroke := lipgloss.NewStyle().Foreground(fg)
	out := make([]string, len(raw))
	for y, row := range raw {
		if !c.marker.on || c.marker.cy != y || c.marker.cx < 0 || c.marker.cx >= c.buf.w {
			out[y] = stroke.Render(row)
			continue
		}
		r := []rune(row)
		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(c.marker.color))).Render("●")
		out[y] = stroke.Render(string(r[:c.marker.cx])) + glyph + stroke.Render(string(r[c.marker.cx+1:]))
	}
	return out
}

// String renders the canvas without colors.
func (c *canvas) String() string {
	return strings.Join(c.buf.toLines(), "\n")
}

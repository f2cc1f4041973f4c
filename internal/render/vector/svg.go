package vector

import (
	"encoding/xml"
	"strconv"
	"strings"
)

const (
	svgNS    = "http://www.w3.org/2000/svg"
	filterID = "flourish-soft"
)

// document is the SVG scene graph. Children marshal in field order: defs,
// background, then the groups (curve first, marker on top).
type document struct {
	XMLName xml.Name `xml:"svg"`
	NS      string   `xml:"xmlns,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`

	Defs       defs    `xml:"defs"`
	Background *rect   `xml:"rect,omitempty"`
	Groups     []group `xml:"g"`
}

const (
	curveGroup = iota
	markerGroup
)

type defs struct {
	Filters []filter `xml:"filter"`
}

// filter holds its primitives as a heterogeneous, ordered list.
type filter struct {
	ID         string `xml:"id,attr"`
	Primitives []any
}

type feGaussianBlur struct {
	XMLName      xml.Name `xml:"feGaussianBlur"`
	In           string   `xml:"in,attr"`
	StdDeviation string   `xml:"stdDeviation,attr"`
	Result       string   `xml:"result,attr,omitempty"`
}

type feComponentTransfer struct {
	XMLName xml.Name `xml:"feComponentTransfer"`
	In      string   `xml:"in,attr,omitempty"`
	Result  string   `xml:"result,attr,omitempty"`
	FuncA   feFunc   `xml:"feFuncA"`
}

type feFunc struct {
	Type  string `xml:"type,attr"`
	Slope string `xml:"slope,attr"`
}

type feComposite struct {
	XMLName  xml.Name `xml:"feComposite"`
	In       string   `xml:"in,attr"`
	In2      string   `xml:"in2,attr"`
	Operator string   `xml:"operator,attr"`
}

type rect struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

type group struct {
	ID      string       `xml:"id,attr"`
	Paths   []pathElem   `xml:"path,omitempty"`
	Circles []circleElem `xml:"circle,omitempty"`
}

type pathElem struct {
	D              string `xml:"d,attr"`
	Fill           string `xml:"fill,attr"`
	Stroke         string `xml:"stroke,attr"`
	StrokeOpacity  string `xml:"stroke-opacity,attr,omitempty"`
	StrokeWidth    string `xml:"stroke-width,attr"`
	StrokeLinejoin string `xml:"stroke-linejoin,attr"`
	StrokeLinecap  string `xml:"stroke-linecap,attr"`
	ShapeRendering string `xml:"shape-rendering,attr"`
	Filter         string `xml:"filter,attr"`
}

type circleElem struct {
	Cx          string `xml:"cx,attr"`
	Cy          string `xml:"cy,attr"`
	R           string `xml:"r,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr,omitempty"`
}

// softFilter is the stroke smoothing chain: a slight blur of the stroke,
// alpha boosted back up, over a wider blur of its alpha.
func softFilter() filter {
	return filter{
		ID: filterID,
		Primitives: []any{
			feGaussianBlur{In: "SourceGraphic", StdDeviation: "0.5", Result: "blur"},
			feComponentTransfer{In: "blur", Result: "sharp", FuncA: feFunc{Type: "linear", Slope: "1.2"}},
			feGaussianBlur{In: "SourceAlpha", StdDeviation: "2", Result: "shadow"},
			feComposite{In: "sharp", In2: "shadow", Operator: "over"},
		},
	}
}

// num formats v with at most three decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func opacity(a uint8) string {
	if a == 255 {
		return ""
	}
	return num(float64(a) / 255)
}

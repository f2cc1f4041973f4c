package geom

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"honnef.co/go/curve"
)

// document is the curve file written by generators: the sampled points,
// optionally the bounds they were computed against, and the generator inputs.
type document struct {
	Params
	Points [][]float64 `json:"points"`
	Bounds *BBox       `json:"bounds,omitempty"`
}

func (b *BBox) UnmarshalJSON(data []byte) error {
	var raw struct {
		MinX, MinY, MaxX, MaxY *float64
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.MinX == nil || raw.MinY == nil || raw.MaxX == nil || raw.MaxY == nil {
		return errors.New("bounds: minX, minY, maxX and maxY are required")
	}
	*b = BBox{MinX: *raw.MinX, MinY: *raw.MinY, MaxX: *raw.MaxX, MaxY: *raw.MaxY}
	return nil
}

// LoadJSON reads a curve document or a GeoJSON file.
func LoadJSON(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON accepts either a curve document ({"points": [[x, y], ...], "bounds": {...}})
// or GeoJSON, whose LineString and MultiLineString coordinates are joined in
// document order into one sequence.
func ReadJSON(r io.Reader) (Curve, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Curve{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Curve{}, err
	}
	if _, ok := raw["points"]; ok {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return Curve{}, err
		}
		c := Curve{Bounds: doc.Bounds, Params: doc.Params}
		for _, p := range doc.Points {
			if len(p) < 2 {
				continue
			}
			c.Points = append(c.Points, curve.Pt(p[0], p[1]))
		}
		if len(c.Points) == 0 {
			return Curve{}, errors.New("curve document: no points")
		}
		return c, nil
	}
	return geoJSON(raw)
}

func geoJSON(raw map[string]any) (Curve, error) {
	var c Curve
	parsePoint := func(v any) (pt curve.Point, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return curve.Pt(x, y), true
			}
		}
		return curve.Point{}, false
	}
	parseLineString := func(v any) {
		arr, ok := v.([]any)
		if !ok {
			return
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				c.Points = append(c.Points, pt)
			}
		}
	}
	var walkGeom func(g map[string]any)
	walkGeom = func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "LineString", "MultiPoint":
			parseLineString(g["coordinates"])
		case "MultiLineString":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, ls := range arr {
					parseLineString(ls)
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, el := range gs {
					if gm, ok := el.(map[string]any); ok {
						walkGeom(gm)
					}
				}
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	case "":
		return Curve{}, errors.New("invalid json: neither a curve document nor geojson")
	default:
		walkGeom(raw)
	}
	if len(c.Points) == 0 {
		return Curve{}, errors.New("geojson: no line coordinates found")
	}
	return c, nil
}

package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// LoadKML reads a KML curve file.
func LoadKML(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, err
	}
	defer f.Close()
	return ReadKML(f)
}

// ReadKML extracts LineString coordinates (Placemark > LineString > coordinates),
// joined in document order. KML coordinates are "x,y[,z]"; z is ignored.
func ReadKML(r io.Reader) (Curve, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Curve{}, err
	}

	type kmlLine struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		LineString *kmlLine `xml:"LineString"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Bare       []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Curve{}, err
	}
	var c Curve
	for _, pm := range append(doc.Placemarks, doc.Bare...) {
		if pm.LineString == nil {
			continue
		}
		// tuples are whitespace separated
		for _, tuple := range strings.Fields(pm.LineString.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			c.Points = append(c.Points, curve.Pt(x, y))
		}
	}
	if len(c.Points) == 0 {
		return Curve{}, errors.New("kml: no line coordinates found")
	}
	return c, nil
}

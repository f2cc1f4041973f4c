package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// LoadCSV reads a CSV curve file.
func LoadCSV(path string) (Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return Curve{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a CSV with x/y columns and returns the points in row order.
// Column detection: x|lon|lng|long|longitude and y|lat|latitude (case-insensitive).
// Rows that do not parse are skipped.
func ReadCSV(r io.Reader) (Curve, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return Curve{}, err
	}
	if len(recs) == 0 {
		return Curve{}, errors.New("empty csv")
	}
	header := recs[0]
	idxX, idxY := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return Curve{}, errors.New("csv: x/y columns not found")
	}
	var c Curve
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		c.Points = append(c.Points, curve.Pt(x, y))
	}
	if len(c.Points) == 0 {
		return Curve{}, errors.New("csv: no valid points parsed")
	}
	return c, nil
}

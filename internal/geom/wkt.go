package geom

import (
	"errors"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// ParseWKT parses the subset of WKT that can describe a curve.
// Supported: LINESTRING(x y, ...), MULTIPOINT(x y, ...), MULTILINESTRING((x y, ...), ...).
func ParseWKT(wkt string) (Curve, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Curve{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var c Curve
	parseTuples := func(block string) {
		block = strings.NewReplacer("(", "", ")", "").Replace(block)
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			c.Points = append(c.Points, curve.Pt(x, y))
		}
	}
	var kind string
	switch {
	case strings.HasPrefix(up, "MULTILINESTRING"):
		kind = "multilinestring"
	case strings.HasPrefix(up, "LINESTRING"):
		kind = "linestring"
	case strings.HasPrefix(up, "MULTIPOINT"):
		kind = "multipoint"
	default:
		return Curve{}, errors.New("unsupported wkt type")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return Curve{}, errors.New("wkt " + kind + ": invalid")
	}
	parseTuples(s[i+1 : j])
	if len(c.Points) == 0 {
		return Curve{}, errors.New("wkt: no coordinates parsed")
	}
	return c, nil
}

// ParseText parses pasted input: WKT when it starts with a geometry keyword,
// otherwise one "x y" or "x,y" pair per line. Blank lines and lines starting
// with # are ignored.
func ParseText(text string) (Curve, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Curve{}, errors.New("no input")
	}
	up := strings.ToUpper(s)
	for _, kw := range []string{"LINESTRING", "MULTIPOINT", "MULTILINESTRING"} {
		if strings.HasPrefix(up, kw) {
			return ParseWKT(s)
		}
	}
	var c Curve
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == ';' })
		if len(parts) < 2 {
			return Curve{}, errors.New("line " + strconv.Itoa(n+1) + ": expected x and y")
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			return Curve{}, errors.New("line " + strconv.Itoa(n+1) + ": invalid number")
		}
		c.Points = append(c.Points, curve.Pt(x, y))
	}
	if len(c.Points) == 0 {
		return Curve{}, errors.New("no points parsed")
	}
	return c, nil
}

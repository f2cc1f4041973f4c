package tui

import (
	"fmt"
	"path/filepath"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"flourish/internal/geom"
)

// refreshInfo fills the info table with the loaded curve's metadata.
func (m *Model) refreshInfo() {
	rows := curveInfo(m.selPath, m.curve)
	if m.session != nil {
		rows = append(rows, table.Row{"progress", fmt.Sprintf("%.0f%% (%s)", m.session.Progress()*100, m.session.State())})
	}
	m.tbl.SetRows(rows)
}

func curveInfo(path string, c geom.Curve) []table.Row {
	name := filepath.Base(path)
	if path == "" {
		name = "<pasted>"
	}
	rows := []table.Row{
		{"name", name},
		{"points", strconv.Itoa(len(c.Points))},
	}
	if c.Bounds != nil {
		rows = append(rows, table.Row{"bounds", formatBBox(*c.Bounds)})
	} else if bb, ok := geom.BoundsOf(c.Points); ok {
		rows = append(rows, table.Row{"extent", formatBBox(bb)})
	}
	p := c.Params
	if p.Style != "" {
		rows = append(rows, table.Row{"style", p.Style})
	}
	if p.Scale != 0 {
		rows = append(rows, table.Row{"scale", fmt.Sprintf("%g", p.Scale)})
	}
	if p.MainCircleRadius != 0 {
		rows = append(rows, table.Row{"radius", fmt.Sprintf("%g", p.MainCircleRadius)})
	}
	for i, g := range p.Gears {
		side := "outside"
		if g.Inside {
			side = "inside"
		}
		rows = append(rows, table.Row{fmt.Sprintf("gear %d", i+1), fmt.Sprintf("r=%g pen=%g %s", g.GearRadius, g.PenRadius, side)})
	}
	if p.Seed != nil {
		rows = append(rows, table.Row{"seed", fmt.Sprintf("%g", *p.Seed)})
	}
	if p.TimeStep != 0 {
		rows = append(rows, table.Row{"dt", fmt.Sprintf("%g", p.TimeStep)})
	}
	return rows
}

func formatBBox(b geom.BBox) string {
	return fmt.Sprintf("[%.4g, %.4g, %.4g, %.4g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

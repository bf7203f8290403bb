package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"polyfill/internal/raster"
)

var fillColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "color", Width: 9},
	{Title: "vertices", Width: 8},
	{Title: "hole", Width: 5},
	{Title: "bounds", Width: 24},
}

// refreshFills rebuilds the fills table from the current scene.
func (m *Model) refreshFills() {
	rows := make([]table.Row, 0, len(m.scene.Fills))
	for i, f := range m.scene.Fills {
		hole := "-"
		if len(f.Hole) > 0 {
			hole = strconv.Itoa(len(f.Hole))
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			f.Color.String(),
			strconv.Itoa(len(f.Polygon)),
			hole,
			boundsText(f.Polygon),
		})
	}
	// clear rows before swapping columns so the table never sees a mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(fillColumns)
	m.tbl.SetRows(rows)
}

func boundsText(p raster.Polygon) string {
	lo, hi, ok := p.Bounds()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("(%d,%d)-(%d,%d)", lo.X, lo.Y, hi.X, hi.Y)
}

package tui

import "strings"

// dotGrid packs 2x4 braille dots per terminal cell.
type dotGrid struct {
	cols, rows int
	cells      []uint8 // row-major dot mask per cell
}

func newDotGrid(cols, rows int) *dotGrid {
	return &dotGrid{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// dotBit[row][col] is the braille bit of a dot inside its cell.
var dotBit = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// set turns on the dot at (x, y); dots outside the grid are dropped.
func (g *dotGrid) set(x, y int) {
	if x < 0 || y < 0 || x >= g.cols*2 || y >= g.rows*4 {
		return
	}
	g.cells[(y/4)*g.cols+x/2] |= dotBit[y%4][x%2]
}

// line plots a segment, stepping one dot at a time along the major axis.
func (g *dotGrid) line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	n := max(abs(dx), abs(dy))
	if n == 0 {
		g.set(x0, y0)
		return
	}
	for i := 0; i <= n; i++ {
		g.set(x0+roundDiv(dx*i, n), y0+roundDiv(dy*i, n))
	}
}

// roundDiv divides by a positive n, rounding halves away from zero.
func roundDiv(a, n int) int {
	if a < 0 {
		return -((-a + n/2) / n)
	}
	return (a + n/2) / n
}

func (g *dotGrid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols*3 + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, mask := range g.cells[r*g.cols : (r+1)*g.cols] {
			if mask == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(0x2800 + rune(mask))
		}
	}
	return sb.String()
}

package raster

import (
	"sort"

	"polyfill/internal/logx"
)

// FillStats counts what a single fill did.
type FillStats struct {
	Rows    int // scanlines visited; rows above or below the buffer are not scanned
	Spans   int // intersection pairs
	Written int // pixels set
	Clipped int // span pixels left or right of the buffer
	InHole  int // span pixels skipped because they are inside the hole
}

// Filler is the scanline rasterizer. The zero value writes half-open spans
// [start, end), so an axis-aligned rectangle (x0,y0)-(x1,y1) covers exactly
// x0 <= x < x1, y0 <= y < y1.
//
// InclusiveSpans writes [start, end] instead; rectangles then gain their
// right column. Callers that need end pixels painted use
// Filler{InclusiveSpans: true} rather than FillPolygon.
type Filler struct {
	InclusiveSpans bool
}

// FillPolygon fills poly with c using the default Filler, so spans are
// half-open [start, end). Use Filler{InclusiveSpans: true}.Fill to also paint
// the end pixel of every span. hole may be nil.
func FillPolygon(buf *Buffer, poly Polygon, c Color, hole Polygon) {
	Filler{}.Fill(buf, poly, c, hole)
}

// Fill paints every pixel covered by poly, minus the pixels inside hole,
// with c. Rows and spans are clamped to buf before any pixel is visited, so
// the cost is bounded by the buffer size. poly and hole are not modified and
// buf is not retained.
func (f Filler) Fill(buf *Buffer, poly Polygon, c Color, hole Polygon) FillStats {
	var st FillStats
	lo, hi, ok := poly.Bounds()
	if !ok {
		return st
	}
	n := len(poly)
	w := buf.Width()
	var xs []int
	for y := max(lo.Y, 0); y <= min(hi.Y, buf.Height()-1); y++ {
		st.Rows++
		xs = xs[:0]
		for i := 0; i < n; i++ {
			p1 := poly[i]
			p2 := poly[(i+1)%n]
			// lower endpoint inclusive, upper exclusive: horizontal edges and
			// shared vertices are counted once
			if (p1.Y <= y && p2.Y > y) || (p2.Y <= y && p1.Y > y) {
				xs = append(xs, p1.X+(y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			st.Spans++
			start, end := xs[i], xs[i+1]
			if !f.InclusiveSpans {
				end--
			}
			if end < start {
				continue
			}
			x0, x1 := max(start, 0), min(end, w-1)
			if x0 > x1 {
				st.Clipped += end - start + 1
				continue
			}
			st.Clipped += (x0 - start) + (end - x1)
			for x := x0; x <= x1; x++ {
				if len(hole) > 0 && PointInPolygon(Point{X: x, Y: y}, hole) {
					st.InHole++
					continue
				}
				buf.Set(x, y, c)
				st.Written++
			}
		}
	}
	logx.L().Debug("fill polygon",
		"vertices", n, "hole", len(hole), "color", c.String(),
		"rows", st.Rows, "spans", st.Spans, "written", st.Written,
		"clipped", st.Clipped, "in_hole", st.InHole)
	return st
}

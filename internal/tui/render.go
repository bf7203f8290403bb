package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"

	"polyfill/internal/raster"
)

// layout is where the map sits on screen, in cells.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lo layout
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = lo.contentW
	if m.showSidebar {
		lo.mapW -= sidebarWidth + 1
		lo.mapX = sidebarWidth + 1
	}
	lo.mapW = max(8, lo.mapW)
	lo.mapH = lo.contentH
	lo.mapY = headerHeight
	return lo
}

// viewport maps the visible part of the buffer onto the dot grid of the map
// area. Dots are two per cell in color mode and 2x4 per cell in braille mode.
type viewport struct {
	src          image.Rectangle // buffer pixels on screen
	dst          image.Rectangle // where src lands, in dots
	dotW, dotH   int
	cellW, cellH int
	scale        float64 // dots per buffer pixel
}

func (m Model) viewSize() (vw, vh int) {
	if m.buf == nil {
		return 0, 0
	}
	return max(1, m.buf.Width()/m.zoom), max(1, m.buf.Height()/m.zoom)
}

func (m Model) viewport(mapW, mapH int) viewport {
	vp := viewport{cellW: 1, cellH: 2}
	if m.mode == ModeBraille {
		vp.cellW, vp.cellH = 2, 4
	}
	vp.dotW, vp.dotH = mapW*vp.cellW, mapH*vp.cellH
	vw, vh := m.viewSize()
	if vw == 0 {
		return vp
	}
	vp.src = image.Rect(m.offsetX, m.offsetY, m.offsetX+vw, m.offsetY+vh)
	vp.scale = math.Min(float64(vp.dotW)/float64(vw), float64(vp.dotH)/float64(vh))
	w := max(1, int(float64(vw)*vp.scale))
	h := max(1, int(float64(vh)*vp.scale))
	x0 := (vp.dotW - w) / 2
	y0 := (vp.dotH - h) / 2
	vp.dst = image.Rect(x0, y0, x0+w, y0+h)
	return vp
}

// toBuffer converts a dot coordinate to the buffer pixel under it.
func (vp viewport) toBuffer(dx, dy int) (x, y int, ok bool) {
	if vp.scale == 0 || !image.Pt(dx, dy).In(vp.dst) {
		return 0, 0, false
	}
	x = vp.src.Min.X + int(float64(dx-vp.dst.Min.X)/vp.scale)
	y = vp.src.Min.Y + int(float64(dy-vp.dst.Min.Y)/vp.scale)
	return min(x, vp.src.Max.X-1), min(y, vp.src.Max.Y-1), true
}

func (vp viewport) toDots(p raster.Point) (int, int) {
	x := float64(vp.dst.Min.X) + float64(p.X-vp.src.Min.X)*vp.scale
	y := float64(vp.dst.Min.Y) + float64(p.Y-vp.src.Min.Y)*vp.scale
	return int(math.Floor(x)), int(math.Floor(y))
}

// scaled returns the dot grid with the visible buffer region drawn into it.
func (m Model) scaled(vp viewport) *image.RGBA {
	dots := image.NewRGBA(image.Rect(0, 0, vp.dotW, vp.dotH))
	xdraw.Draw(dots, dots.Bounds(), image.NewUniform(raster.Color(letterbox)), image.Point{}, xdraw.Src)
	if m.img != nil && !vp.dst.Empty() {
		xdraw.NearestNeighbor.Scale(dots, vp.dst, m.img, vp.src, xdraw.Src, nil)
	}
	return dots
}

// refreshCanvas recomputes the cached map string. It runs from Update
// whenever the buffer, the view or the terminal size changes.
func (m *Model) refreshCanvas() {
	if m.width == 0 || m.height == 0 || m.buf == nil {
		m.canvas = ""
		return
	}
	lo := m.layout()
	if m.mode == ModeBraille {
		m.canvas = m.renderBraille(lo.mapW, lo.mapH)
	} else {
		m.canvas = m.renderColor(lo.mapW, lo.mapH)
	}
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// renderColor draws each cell as an upper half block: foreground is the top
// dot, background the bottom one. Runs of identical cells share one style.
func (m Model) renderColor(w, h int) string {
	vp := m.viewport(w, h)
	dots := m.scaled(vp)
	lines := make([]string, h)
	var sb strings.Builder
	for cy := 0; cy < h; cy++ {
		sb.Reset()
		run := 0
		var top, bot color.RGBA
		flush := func() {
			if run == 0 {
				return
			}
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexOf(top))).
				Background(lipgloss.Color(hexOf(bot)))
			sb.WriteString(st.Render(strings.Repeat("▀", run)))
			run = 0
		}
		for x := 0; x < w; x++ {
			t, b := dots.RGBAAt(x, 2*cy), dots.RGBAAt(x, 2*cy+1)
			if run > 0 && (t != top || b != bot) {
				flush()
			}
			top, bot = t, b
			run++
		}
		flush()
		lines[cy] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// renderBraille sets a dot for every pixel that differs from the scene
// background and traces polygon outlines on top.
func (m Model) renderBraille(w, h int) string {
	vp := m.viewport(w, h)
	dots := m.scaled(vp)
	bg := m.bgRGBA()
	br := newDotGrid(w, h)
	for y := vp.dst.Min.Y; y < vp.dst.Max.Y; y++ {
		for x := vp.dst.Min.X; x < vp.dst.Max.X; x++ {
			if dots.RGBAAt(x, y) != bg {
				br.set(x, y)
			}
		}
	}
	for _, f := range m.scene.Fills {
		for _, ring := range []raster.Polygon{f.Polygon, f.Hole} {
			for i := range ring {
				x0, y0 := vp.toDots(ring[i])
				x1, y1 := vp.toDots(ring[(i+1)%len(ring)])
				br.line(x0, y0, x1, y1)
			}
		}
	}
	return br.String()
}

func (m Model) bgRGBA() color.RGBA {
	r, g, b := m.scene.Background.Channels()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

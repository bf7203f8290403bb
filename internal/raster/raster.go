// Package raster fills integer polygons into a packed-RGB pixel buffer.
//
// The filler is a plain scanline rasterizer: every row between the
// polygon's lowest and highest vertex is intersected with the polygon's
// edges, the crossings are sorted and paired, and the spans between pairs
// are written. A single optional hole polygon is subtracted per pixel with
// an even-odd point-in-polygon test.
//
// Known simplifications, all of which affect the rendered output:
//   - intercepts use integer arithmetic and truncate toward zero;
//   - a trailing unpaired crossing on a row is dropped;
//   - self-intersecting or collinear-edge polygons produce whatever spans
//     the pairing yields, with no guarantee about which.
package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Polygon is an implicitly closed vertex list: the last vertex connects back
// to the first. Fewer than three vertices paint nothing useful.
type Polygon []Point

// Poly builds a polygon from flat x, y pairs. A trailing odd value is ignored.
func Poly(xy ...int) Polygon {
	p := make(Polygon, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		p = append(p, Point{X: xy[i], Y: xy[i+1]})
	}
	return p
}

// Bounds returns the min and max corners of the vertices. ok is false for an
// empty polygon.
func (p Polygon) Bounds() (lo, hi Point, ok bool) {
	if len(p) == 0 {
		return Point{}, Point{}, false
	}
	lo, hi = p[0], p[0]
	for _, v := range p[1:] {
		lo.X = min(lo.X, v.X)
		lo.Y = min(lo.Y, v.Y)
		hi.X = max(hi.X, v.X)
		hi.Y = max(hi.Y, v.Y)
	}
	return lo, hi, true
}

// Color is a packed 0xRRGGBB value. There is no alpha channel.
type Color uint32

// Common colors.
const (
	Black  Color = 0x000000
	White  Color = 0xFFFFFF
	Red    Color = 0xFF0000
	Green  Color = 0x00FF00
	Blue   Color = 0x0000FF
	Yellow Color = 0xFFFF00
)

// ErrInvalidColor is returned by ParseColor.
var ErrInvalidColor = errors.New("raster: invalid color")

// RGB packs three 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Channels unpacks red (bits 16-23), green (8-15) and blue (0-7).
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Channels()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// ColorModel converts any color.Color to a Color, dropping alpha.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// ParseColor accepts "#rrggbb", "0xRRGGBB" and bare "rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || len(s) != 8 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return Color(v), nil
	case !strings.HasPrefix(s, "#"):
		s = "#" + s
	}
	if len(s) != 7 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return RGB(c.RGB255()), nil
}

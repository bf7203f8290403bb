package geom

import (
	"errors"
	"math"

	"polyfill/internal/logx"
	"polyfill/internal/raster"
)

var (
	// ErrUnsupportedFormat is returned by Load for unknown file extensions.
	ErrUnsupportedFormat = errors.New("geom: unsupported format")
	// ErrNoPolygons is returned when an input parses but holds no polygon.
	ErrNoPolygons = errors.New("geom: no polygons found")
	// ErrInvalidWKT is returned for malformed WKT text.
	ErrInvalidWKT = errors.New("geom: invalid wkt")
	// ErrInvalidCoordinate is returned for NaN, infinite or out-of-range
	// coordinates.
	ErrInvalidCoordinate = errors.New("geom: coordinate out of range")
)

// MaxCoord bounds the magnitude of accepted coordinates. Rounded to int they
// fit an int32, and the filler's intercept products stay inside int64.
const MaxCoord = 1 << 30

func validCoord(x, y float64) bool {
	return math.Abs(x) <= MaxCoord && math.Abs(y) <= MaxCoord
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Ring is an implicitly closed list of vertices.
type Ring [][2]float64

// Shape is one fillable polygon: an outer ring and at most one hole.
type Shape struct {
	Name  string
	Outer Ring
	Hole  Ring
}

// Data is the result of loading a geometry source.
type Data struct {
	Shapes []Shape
	BBox   BBox

	hasBBox bool
}

func (d *Data) extend(pt [2]float64) {
	if !d.hasBBox {
		d.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		d.hasBBox = true
		return
	}
	d.BBox.MinX = math.Min(d.BBox.MinX, pt[0])
	d.BBox.MinY = math.Min(d.BBox.MinY, pt[1])
	d.BBox.MaxX = math.Max(d.BBox.MaxX, pt[0])
	d.BBox.MaxY = math.Max(d.BBox.MaxY, pt[1])
}

// add appends a shape built from rings (first outer, the rest holes). Only
// the first hole is kept.
func (d *Data) add(name string, rings []Ring) {
	var s Shape
	s.Name = name
	for i, r := range rings {
		r = openRing(r)
		if len(r) == 0 {
			continue
		}
		switch {
		case s.Outer == nil:
			s.Outer = r
		case s.Hole == nil:
			s.Hole = r
		default:
			logx.L().Warn("ignoring extra hole ring", "shape", name, "ring", i)
		}
	}
	if s.Outer == nil {
		return
	}
	for _, p := range s.Outer {
		d.extend(p)
	}
	d.Shapes = append(d.Shapes, s)
}

// openRing drops a closing vertex that repeats the first one.
func openRing(r Ring) Ring {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// Polygon rounds a ring to integer pixel coordinates.
func (r Ring) Polygon() raster.Polygon {
	if r == nil {
		return nil
	}
	p := make(raster.Polygon, len(r))
	for i, v := range r {
		p[i] = raster.Pt(int(math.Round(v[0])), int(math.Round(v[1])))
	}
	return p
}

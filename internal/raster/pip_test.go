package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var convex = map[string]Polygon{
	"square":   Poly(0, 0, 10, 0, 10, 10, 0, 10),
	"triangle": Poly(0, 0, 10, 0, 5, 10),
	"hexagon":  Poly(10, 0, 20, 0, 25, 10, 20, 20, 10, 20, 5, 10),
	"ccw-quad": Poly(100, 100, 100, 160, 180, 170, 190, 90),
}

func centroid(p Polygon) Point {
	var c Point
	for _, v := range p {
		c.X += v.X
		c.Y += v.Y
	}
	return Point{X: c.X / len(p), Y: c.Y / len(p)}
}

func TestPointInPolygonCentroid(t *testing.T) {
	for name, p := range convex {
		t.Run(name, func(t *testing.T) {
			assert.True(t, PointInPolygon(centroid(p), p))
		})
	}
}

func TestPointInPolygonFarOutside(t *testing.T) {
	far := []Point{{-1000, -1000}, {1000, 5}, {5, 1000}, {-50, 5}, {5, -50}}
	for name, p := range convex {
		for _, q := range far {
			assert.False(t, PointInPolygon(q, p), "%s %v", name, q)
		}
	}
}

func TestPointInPolygonHoleSquare(t *testing.T) {
	hole := Poly(3, 3, 6, 3, 6, 6, 3, 6)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 3 && x < 6 && y >= 3 && y < 6
			assert.Equal(t, want, PointInPolygon(Pt(x, y), hole), "(%d,%d)", x, y)
		}
	}
}

func TestPointInPolygonDegenerate(t *testing.T) {
	assert.False(t, PointInPolygon(Pt(0, 0), nil))
	assert.False(t, PointInPolygon(Pt(0, 0), Poly(0, 0)))
	assert.False(t, PointInPolygon(Pt(1, 1), Poly(0, 0, 2, 2)))
}

func TestPointInPolygonConcave(t *testing.T) {
	// U shape: the notch between the arms is outside
	u := Poly(0, 0, 3, 0, 3, 6, 6, 6, 6, 0, 9, 0, 9, 9, 0, 9)
	assert.True(t, PointInPolygon(Pt(1, 2), u))
	assert.True(t, PointInPolygon(Pt(7, 2), u))
	assert.False(t, PointInPolygon(Pt(4, 2), u))
	assert.True(t, PointInPolygon(Pt(4, 7), u))
}

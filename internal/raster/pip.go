package raster

// PointInPolygon reports whether p is inside poly under the even-odd rule,
// casting a ray toward +X. Arithmetic is integer, so the edge intercept is
// truncated toward zero; points on an edge land on whichever side that
// truncation puts them.
func PointInPolygon(p Point, poly Polygon) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

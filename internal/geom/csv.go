package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads polygon vertices from a CSV file.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads one vertex per row. Column detection (case-insensitive):
// x|lon|lng|long|longitude and y|lat|latitude are required; an optional
// ring column marks rows as "outer" (default) or "hole"; an optional shape
// column groups rows into separate polygons, in order of first appearance.
func ParseCSV(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return Data{}, fmt.Errorf("csv: %w", err)
	}
	if len(recs) == 0 {
		return Data{}, errors.New("csv: empty")
	}
	idxX, idxY, idxRing, idxShape := -1, -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		case "ring":
			idxRing = i
		case "shape", "polygon", "id":
			if idxShape == -1 {
				idxShape = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return Data{}, errors.New("csv: x/y columns not found")
	}

	type acc struct {
		outer, hole Ring
	}
	var order []string
	shapes := map[string]*acc{}
	for n, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			return Data{}, fmt.Errorf("csv: row %d: invalid coordinate", n+2)
		}
		if !validCoord(x, y) {
			return Data{}, fmt.Errorf("csv: row %d: %w", n+2, ErrInvalidCoordinate)
		}
		key := "csv"
		if idxShape >= 0 && idxShape < len(row) {
			key = strings.TrimSpace(row[idxShape])
		}
		a, ok := shapes[key]
		if !ok {
			a = &acc{}
			shapes[key] = a
			order = append(order, key)
		}
		pt := [2]float64{x, y}
		if idxRing >= 0 && idxRing < len(row) && strings.EqualFold(strings.TrimSpace(row[idxRing]), "hole") {
			a.hole = append(a.hole, pt)
		} else {
			a.outer = append(a.outer, pt)
		}
	}
	var d Data
	for _, key := range order {
		a := shapes[key]
		rings := []Ring{a.outer}
		if len(a.hole) > 0 {
			rings = append(rings, a.hole)
		}
		d.add(key, rings)
	}
	if len(d.Shapes) == 0 {
		return Data{}, ErrNoPolygons
	}
	return d, nil
}

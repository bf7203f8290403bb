package geom

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGeoJSON reads Polygon and MultiPolygon geometries from a GeoJSON file.
func LoadGeoJSON(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON accepts a bare geometry, a Feature, a FeatureCollection or a
// GeometryCollection. Non-polygon geometries are skipped.
func ParseGeoJSON(data []byte) (Data, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	var (
		d      Data
		badErr error
	)
	parsePoint := func(v any) (pt [2]float64, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			switch {
			case !xok || !yok:
			case !validCoord(x, y):
				if badErr == nil {
					badErr = fmt.Errorf("geojson: %w: [%g, %g]", ErrInvalidCoordinate, x, y)
				}
			default:
				return [2]float64{x, y}, true
			}
		}
		return [2]float64{}, false
	}
	parseRing := func(v any) (r Ring, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				r = append(r, pt)
			}
		}
		return r, true
	}
	parsePolygon := func(v any) (rings []Ring, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if r, ok := parseRing(el); ok {
				rings = append(rings, r)
			}
		}
		return rings, true
	}
	var walkGeom func(g map[string]any, name string)
	walkGeom = func(g map[string]any, name string) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if rings, ok := parsePolygon(g["coordinates"]); ok {
				d.add(name, rings)
			}
		case "MultiPolygon":
			arr, _ := g["coordinates"].([]any)
			for i, el := range arr {
				if rings, ok := parsePolygon(el); ok {
					d.add(fmt.Sprintf("%s.%d", name, i+1), rings)
				}
			}
		case "GeometryCollection":
			gs, _ := g["geometries"].([]any)
			for i, el := range gs {
				if gm, ok := el.(map[string]any); ok {
					walkGeom(gm, fmt.Sprintf("%s.%d", name, i+1))
				}
			}
		}
	}
	featureName := func(f map[string]any, fallback string) string {
		if props, ok := f["properties"].(map[string]any); ok {
			if n, ok := props["name"].(string); ok && n != "" {
				return n
			}
		}
		return fallback
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g, featureName(raw, "feature"))
		}
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for i, f := range fs {
			fm, ok := f.(map[string]any)
			if !ok {
				continue
			}
			if g, ok := fm["geometry"].(map[string]any); ok {
				walkGeom(g, featureName(fm, fmt.Sprintf("feature-%d", i+1)))
			}
		}
	case "":
		return Data{}, fmt.Errorf("geojson: missing type")
	default:
		walkGeom(raw, "geometry")
	}
	if badErr != nil {
		return Data{}, badErr
	}
	if len(d.Shapes) == 0 {
		return Data{}, ErrNoPolygons
	}
	return d, nil
}

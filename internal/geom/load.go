package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"polyfill/internal/logx"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".wkt", ".geojson", ".json", ".kml", ".csv"}

// Supported reports whether Load can read path, judging by its extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Geographic reports whether the format carries lon/lat coordinates (y up)
// rather than pixel coordinates.
func Geographic(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".kml":
		return true
	}
	return false
}

// Load reads polygons from path, choosing the parser by extension.
func Load(path string) (Data, error) {
	var (
		d   Data
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wkt":
		var b []byte
		b, err = os.ReadFile(path)
		if err == nil {
			d, err = ParseWKT(string(b))
		}
	case ".geojson", ".json":
		d, err = LoadGeoJSON(path)
	case ".kml":
		d, err = LoadKML(path)
	case ".csv":
		d, err = LoadCSV(path)
	default:
		return Data{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Data{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	logx.L().Debug("geometry loaded", "path", path, "shapes", len(d.Shapes),
		"bbox", fmt.Sprintf("[%g %g %g %g]", d.BBox.MinX, d.BBox.MinY, d.BBox.MaxX, d.BBox.MaxY))
	return d, nil
}

package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Name     string       `xml:"name"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    []kmlPolygon `xml:"MultiGeometry>Polygon"`
}

// LoadKML reads Placemark polygons from a KML file.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ParseKML(f)
}

// ParseKML extracts Placemark > Polygon (and MultiGeometry > Polygon)
// boundaries at any nesting depth. KML coordinates are "lon,lat[,alt]";
// altitude is ignored.
func ParseKML(r io.Reader) (Data, error) {
	var d Data
	dec := xml.NewDecoder(r)
	n := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Data{}, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, fmt.Errorf("kml: placemark: %w", err)
		}
		n++
		name := pm.Name
		if name == "" {
			name = fmt.Sprintf("placemark-%d", n)
		}
		polys := append(pm.Polygons, pm.Multi...)
		for i, p := range polys {
			outer, err := parseKMLCoords(p.Outer.Coordinates)
			if err != nil {
				return Data{}, fmt.Errorf("kml: %s: %w", name, err)
			}
			rings := []Ring{outer}
			for _, in := range p.Inner {
				r, err := parseKMLCoords(in.Coordinates)
				if err != nil {
					return Data{}, fmt.Errorf("kml: %s: %w", name, err)
				}
				rings = append(rings, r)
			}
			pn := name
			if len(polys) > 1 {
				pn = fmt.Sprintf("%s.%d", name, i+1)
			}
			d.add(pn, rings)
		}
	}
	if len(d.Shapes) == 0 {
		return Data{}, ErrNoPolygons
	}
	return d, nil
}

// parseKMLCoords skips malformed tuples but rejects out-of-range values.
func parseKMLCoords(s string) (Ring, error) {
	var r Ring
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if !validCoord(x, y) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCoordinate, tuple)
		}
		r = append(r, [2]float64{x, y})
	}
	return r, nil
}

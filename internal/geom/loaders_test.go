package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "plaza"},
     "geometry": {"type": "Polygon", "coordinates": [
       [[-3.70, 40.41], [-3.69, 40.41], [-3.69, 40.42], [-3.70, 40.42], [-3.70, 40.41]],
       [[-3.698, 40.412], [-3.692, 40.412], [-3.692, 40.418], [-3.698, 40.412]]
     ]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [0, 0]}},
    {"type": "Feature",
     "geometry": {"type": "MultiPolygon", "coordinates": [
       [[[0, 0], [1, 0], [1, 1]]],
       [[[2, 2], [3, 2], [3, 3]]]
     ]}}
  ]
}`

func TestParseGeoJSON(t *testing.T) {
	d, err := ParseGeoJSON([]byte(sampleGeoJSON))
	require.NoError(t, err)
	require.Len(t, d.Shapes, 3)
	assert.Equal(t, "plaza", d.Shapes[0].Name)
	assert.Len(t, d.Shapes[0].Outer, 4)
	assert.Len(t, d.Shapes[0].Hole, 3)
	assert.Equal(t, "feature-3.2", d.Shapes[2].Name)
	assert.InDelta(t, -3.70, d.BBox.MinX, 1e-9)
	assert.InDelta(t, 40.42, d.BBox.MaxY, 1e-9)
}

func TestParseGeoJSONBareGeometry(t *testing.T) {
	d, err := ParseGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4]]]}`))
	require.NoError(t, err)
	require.Len(t, d.Shapes, 1)
	assert.Equal(t, "geometry", d.Shapes[0].Name)
}

func TestParseGeoJSONErrors(t *testing.T) {
	_, err := ParseGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	assert.ErrorIs(t, err, ErrNoPolygons)
	_, err = ParseGeoJSON([]byte(`{}`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`not json`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1e300,0],[4,4]]]}`))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = ParseGeoJSON([]byte(`{"type":"MultiPolygon","coordinates":[[[[0,0],[4,0],[4,4]]],[[[0,0],[4,-2e9],[4,4]]]]}`))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document><Folder>
  <Placemark>
    <name>block</name>
    <Polygon>
      <outerBoundaryIs><LinearRing><coordinates>
        0,0,0 10,0,0 10,10,0 0,10,0 0,0,0
      </coordinates></LinearRing></outerBoundaryIs>
      <innerBoundaryIs><LinearRing><coordinates>
        3,3 6,3 6,6 3,6
      </coordinates></LinearRing></innerBoundaryIs>
    </Polygon>
  </Placemark>
  <Placemark><name>pin</name><Point><coordinates>1,1</coordinates></Point></Placemark>
  <Placemark>
    <MultiGeometry>
      <Polygon><outerBoundaryIs><LinearRing><coordinates>20,20 30,20 30,30</coordinates></LinearRing></outerBoundaryIs></Polygon>
      <Polygon><outerBoundaryIs><LinearRing><coordinates>40,40 50,40 50,50</coordinates></LinearRing></outerBoundaryIs></Polygon>
    </MultiGeometry>
  </Placemark>
</Folder></Document>
</kml>`

func TestParseKML(t *testing.T) {
	d, err := ParseKML(strings.NewReader(sampleKML))
	require.NoError(t, err)
	require.Len(t, d.Shapes, 3)
	assert.Equal(t, "block", d.Shapes[0].Name)
	assert.Equal(t, Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, d.Shapes[0].Outer)
	assert.Equal(t, Ring{{3, 3}, {6, 3}, {6, 6}, {3, 6}}, d.Shapes[0].Hole)
	assert.Equal(t, "placemark-3.2", d.Shapes[2].Name)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 50, MaxY: 50}, d.BBox)
}

func TestParseKMLNoPolygons(t *testing.T) {
	_, err := ParseKML(strings.NewReader(`<kml><Placemark><Point><coordinates>1,1</coordinates></Point></Placemark></kml>`))
	assert.ErrorIs(t, err, ErrNoPolygons)
}

func TestParseKMLRejectsOutOfRangeCoordinates(t *testing.T) {
	for _, coords := range []string{"0,0 1e300,0 4,4", "0,0 4,0 4,NaN"} {
		src := `<kml><Placemark><Polygon><outerBoundaryIs><LinearRing><coordinates>` +
			coords + `</coordinates></LinearRing></outerBoundaryIs></Polygon></Placemark></kml>`
		_, err := ParseKML(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrInvalidCoordinate, coords)
	}
}

func TestParseCSV(t *testing.T) {
	src := "shape,X,Y,ring\n" +
		"a,1,1,outer\n" +
		"a,8,1,\n" +
		"a,8,8,\n" +
		"a,1,8,\n" +
		"a,3,3,hole\n" +
		"a,6,3,HOLE\n" +
		"a,6,6,hole\n" +
		"b,20,20,\n" +
		"b,30,20,\n" +
		"b,25,30,\n"
	d, err := ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, d.Shapes, 2)
	assert.Equal(t, "a", d.Shapes[0].Name)
	assert.Equal(t, Ring{{1, 1}, {8, 1}, {8, 8}, {1, 8}}, d.Shapes[0].Outer)
	assert.Equal(t, Ring{{3, 3}, {6, 3}, {6, 6}}, d.Shapes[0].Hole)
	assert.Equal(t, "b", d.Shapes[1].Name)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("x,y\n1,nope\n"))
	assert.Error(t, err)
	_, err = ParseCSV(strings.NewReader("x,y\n"))
	assert.ErrorIs(t, err, ErrNoPolygons)
	for _, row := range []string{"NaN,1", "1,Inf", "1e300,0", "0,-2000000000"} {
		_, err = ParseCSV(strings.NewReader("x,y\n0,0\n" + row + "\n4,4\n"))
		assert.ErrorIs(t, err, ErrInvalidCoordinate, row)
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.wkt":     "POLYGON((0 0, 4 0, 4 4))",
		"b.geojson": `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4]]]}`,
		"c.kml":     sampleKML,
		"d.csv":     "x,y\n0,0\n4,0\n4,4\n",
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		assert.True(t, Supported(p))
		d, err := Load(p)
		require.NoError(t, err, name)
		assert.NotEmpty(t, d.Shapes, name)
	}
	assert.True(t, Geographic("x.kml"))
	assert.False(t, Geographic("x.wkt"))

	_, err := Load(filepath.Join(dir, "e.shp"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, Supported("e.shp"))

	_, err = Load(filepath.Join(dir, "missing.wkt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

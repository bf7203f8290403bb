package scene

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"polyfill/internal/geom"
	"polyfill/internal/raster"
)

// fileScene is the TOML layout of a scene file.
type fileScene struct {
	Name       string     `toml:"name,omitempty"`
	Title      string     `toml:"title,omitempty"`
	Width      int        `toml:"width,omitempty"`
	Height     int        `toml:"height,omitempty"`
	Background string     `toml:"background,omitempty"`
	Fill       []fileFill `toml:"fill"`
}

type fileFill struct {
	Color  string  `toml:"color,omitempty"`
	Points [][]int `toml:"points"`
	Hole   [][]int `toml:"hole,omitempty"`
}

// FitMargin is the border kept free when geographic shapes are scaled into
// the canvas.
const FitMargin = 20

// LoadFile reads a scene from path. ".toml" files are scene files; any
// format the geom package supports becomes one fill per shape.
func LoadFile(path string) (*Scene, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var (
		s   *Scene
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var b []byte
		if b, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		s, err = DecodeTOML(bytes.NewReader(b), name)
	} else {
		var d geom.Data
		if d, err = geom.Load(path); err != nil {
			return nil, err
		}
		s = FromData(name, d, geom.Geographic(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.Source = path
	return s, nil
}

// DecodeTOML reads a scene file. Missing fields default to an 800x600 white
// canvas; missing fill colors come from the palette.
func DecodeTOML(r io.Reader, defaultName string) (*Scene, error) {
	var fs fileScene
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	s := &Scene{
		Name:       fs.Name,
		Title:      fs.Title,
		Width:      fs.Width,
		Height:     fs.Height,
		Background: raster.White,
	}
	if s.Name == "" {
		s.Name = defaultName
	}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if fs.Background != "" {
		c, err := raster.ParseColor(fs.Background)
		if err != nil {
			return nil, fmt.Errorf("%w: background: %w", ErrInvalidScene, err)
		}
		s.Background = c
	}
	for i, ff := range fs.Fill {
		f := Fill{Color: s.NextColor()}
		if ff.Color != "" {
			c, err := raster.ParseColor(ff.Color)
			if err != nil {
				return nil, fmt.Errorf("%w: fill %d: %w", ErrInvalidScene, i+1, err)
			}
			f.Color = c
		}
		var err error
		if f.Polygon, err = toPolygon(ff.Points); err != nil {
			return nil, fmt.Errorf("%w: fill %d points: %w", ErrInvalidScene, i+1, err)
		}
		if f.Hole, err = toPolygon(ff.Hole); err != nil {
			return nil, fmt.Errorf("%w: fill %d hole: %w", ErrInvalidScene, i+1, err)
		}
		s.Fills = append(s.Fills, f)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeTOML writes s in the scene file layout.
func EncodeTOML(w io.Writer, s *Scene) error {
	fs := fileScene{
		Name:       s.Name,
		Title:      s.Title,
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background.String(),
	}
	for _, f := range s.Fills {
		fs.Fill = append(fs.Fill, fileFill{
			Color:  f.Color.String(),
			Points: fromPolygon(f.Polygon),
			Hole:   fromPolygon(f.Hole),
		})
	}
	enc := toml.NewEncoder(w)
	enc.SetArraysMultiline(false)
	return enc.Encode(fs)
}

func toPolygon(pts [][]int) (raster.Polygon, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	p := make(raster.Polygon, 0, len(pts))
	for _, v := range pts {
		if len(v) != 2 {
			return nil, fmt.Errorf("vertex %v: want [x, y]", v)
		}
		if !inRange(v[0]) || !inRange(v[1]) {
			return nil, fmt.Errorf("vertex %v: %w", v, geom.ErrInvalidCoordinate)
		}
		p = append(p, raster.Pt(v[0], v[1]))
	}
	return p, nil
}

func inRange(v int) bool { return v >= -geom.MaxCoord && v <= geom.MaxCoord }

func fromPolygon(p raster.Polygon) [][]int {
	if len(p) == 0 {
		return nil
	}
	out := make([][]int, len(p))
	for i, v := range p {
		out[i] = []int{v.X, v.Y}
	}
	return out
}

// FromData turns loaded shapes into a default-canvas scene with palette
// colors. Geographic data is scaled into the canvas with y pointing up;
// other data is taken as pixel coordinates.
func FromData(name string, d geom.Data, geographic bool) *Scene {
	s := &Scene{
		Name:       name,
		Title:      name,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: raster.White,
	}
	tf := func(r geom.Ring) raster.Polygon { return r.Polygon() }
	if geographic {
		tf = Fit(d.BBox, s.Width, s.Height, FitMargin)
	}
	for _, sh := range d.Shapes {
		s.Fills = append(s.Fills, Fill{
			Color:   s.NextColor(),
			Polygon: tf(sh.Outer),
			Hole:    tf(sh.Hole),
		})
	}
	return s
}

// Fit returns a transform mapping bb into a w x h canvas, keeping the aspect
// ratio, centring, leaving margin pixels free and flipping y.
func Fit(bb geom.BBox, w, h, margin int) func(geom.Ring) raster.Polygon {
	bw, bh := bb.MaxX-bb.MinX, bb.MaxY-bb.MinY
	aw, ah := float64(w-2*margin), float64(h-2*margin)
	scale := 1.0
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(aw/bw, ah/bh)
	case bw > 0:
		scale = aw / bw
	case bh > 0:
		scale = ah / bh
	}
	offX := float64(margin) + (aw-bw*scale)/2
	offY := float64(margin) + (ah-bh*scale)/2
	return func(r geom.Ring) raster.Polygon {
		if r == nil {
			return nil
		}
		p := make(raster.Polygon, len(r))
		for i, v := range r {
			x := offX + (v[0]-bb.MinX)*scale
			y := float64(h) - (offY + (v[1]-bb.MinY)*scale)
			p[i] = raster.Pt(int(math.Round(x)), int(math.Round(y)))
		}
		return p
	}
}

// Package scene describes what gets rasterized: a canvas size, a background
// and an ordered list of fills. Scenes come from the built-in table, from
// TOML files, or from any geometry file the geom package can read.
package scene

import (
	"context"
	"errors"
	"fmt"
	"time"

	"polyfill/internal/logx"
	"polyfill/internal/raster"
)

// Default canvas used when a source does not specify one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var (
	// ErrUnknownScene is returned by Builtin for names not in the table.
	ErrUnknownScene = errors.New("scene: unknown scene")
	// ErrInvalidScene is returned by Validate and the loaders.
	ErrInvalidScene = errors.New("scene: invalid scene")
)

// Palette is cycled through when a source gives no colors.
var Palette = []raster.Color{
	raster.Green, raster.Yellow, raster.Red, raster.Blue,
	0xFF00FF, 0x00FFFF, 0xFF8000, 0x8000FF,
}

// Fill is one call into the rasterizer. Hole may be nil.
type Fill struct {
	Color   raster.Color
	Polygon raster.Polygon
	Hole    raster.Polygon
}

// Scene is an ordered list of fills over a fixed-size canvas. Later fills
// overwrite earlier ones.
type Scene struct {
	Name       string
	Title      string
	Width      int
	Height     int
	Background raster.Color
	Fills      []Fill

	// Source is the file the scene was loaded from, empty for built-ins.
	Source string
}

// Validate checks the canvas size and that every fill has vertices.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %q: size %dx%d", ErrInvalidScene, s.Name, s.Width, s.Height)
	}
	for i, f := range s.Fills {
		if len(f.Polygon) == 0 {
			return fmt.Errorf("%w: %q: fill %d has no vertices", ErrInvalidScene, s.Name, i+1)
		}
	}
	return nil
}

// Clone returns a copy whose fill list can be extended independently.
// Vertex slices are shared; they are never written.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Fills = append([]Fill(nil), s.Fills...)
	return &c
}

// NextColor is the palette color for the next appended fill.
func (s *Scene) NextColor() raster.Color {
	return Palette[len(s.Fills)%len(Palette)]
}

// WindowTitle returns Title, falling back to Name.
func (s *Scene) WindowTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// Stats sums the fill statistics of a render.
type Stats struct {
	Fills int
	raster.FillStats
}

// Render allocates a buffer with the scene background and applies every fill
// in order. The context is checked between fills.
func Render(ctx context.Context, s *Scene, f raster.Filler) (*raster.Buffer, Stats, error) {
	var st Stats
	if err := s.Validate(); err != nil {
		return nil, st, err
	}
	buf, err := raster.NewBuffer(s.Width, s.Height, s.Background)
	if err != nil {
		return nil, st, err
	}
	start := time.Now()
	for _, fl := range s.Fills {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		fs := f.Fill(buf, fl.Polygon, fl.Color, fl.Hole)
		st.Fills++
		st.Rows += fs.Rows
		st.Spans += fs.Spans
		st.Written += fs.Written
		st.Clipped += fs.Clipped
		st.InHole += fs.InHole
	}
	logx.L().Info("scene rendered",
		"scene", s.Name, "size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"fills", st.Fills, "written", st.Written, "clipped", st.Clipped,
		"inclusive", f.InclusiveSpans, "elapsed", time.Since(start))
	return buf, st, nil
}

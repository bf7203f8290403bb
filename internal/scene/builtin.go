package scene

import (
	"fmt"
	"sort"

	"polyfill/internal/raster"
)

// star is the ten-vertex outline used by the green scene.
var star = raster.Poly(
	165, 380, 185, 360, 180, 330, 207, 345, 233, 330,
	230, 360, 250, 380, 220, 385, 205, 410, 193, 383,
)

var builtins = map[string]func() *Scene{
	"green": func() *Scene {
		return &Scene{
			Name:       "green",
			Title:      "Green polygon",
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: raster.White,
			Fills:      []Fill{{Color: raster.Green, Polygon: star}},
		}
	},
	"yellow-hole": func() *Scene {
		return &Scene{
			Name:       "yellow-hole",
			Title:      "Yellow polygon with hole",
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: raster.White,
			Fills: []Fill{{
				Color:   raster.Yellow,
				Polygon: raster.Poly(300, 150, 550, 180, 520, 450, 260, 420),
				Hole:    raster.Poly(360, 250, 460, 250, 460, 350, 360, 350),
			}},
		}
	},
	"mixed": func() *Scene {
		return &Scene{
			Name:       "mixed",
			Title:      "Overlapping polygons",
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Background: raster.White,
			Fills: []Fill{
				{Color: raster.Blue, Polygon: raster.Poly(321, 335, 288, 286, 339, 251, 374, 302)},
				{Color: raster.Red, Polygon: raster.Poly(377, 249, 411, 197, 436, 249)},
				{Color: raster.Green, Polygon: star},
				{
					Color:   raster.Yellow,
					Polygon: raster.Poly(413, 177, 448, 159, 502, 88, 553, 53, 535, 36, 676, 37, 660, 52, 750, 145, 761, 179, 672, 192, 659, 214, 615, 214, 632, 230, 580, 230, 597, 215, 552, 214, 517, 144, 466, 180),
					Hole:    raster.Poly(682, 175, 708, 120, 735, 148, 739, 170),
				},
				// partly off-canvas, clipped per pixel
				{Color: 0xFF00FF, Polygon: raster.Poly(700, 500, 900, 520, 760, 700)},
			},
		}
	},
}

// Names lists the built-in scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a fresh copy of the named scene.
func Builtin(name string) (*Scene, error) {
	mk, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return mk(), nil
}

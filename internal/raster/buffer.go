package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrInvalidDimensions is returned when a buffer is created with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("raster: invalid dimensions")

// Buffer is a fixed-size grid of packed colors stored row-major:
// index = y*width + x. Its size never changes after creation.
//
// Buffer implements image.Image so display and export code can read it
// without copying.
type Buffer struct {
	width  int
	height int
	pix    []Color
}

// NewBuffer allocates a width x height buffer filled with bg.
func NewBuffer(width, height int, bg Color) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	b := &Buffer{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
	b.Clear(bg)
	return b, nil
}

// Width returns the width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Buffer) Height() int { return b.height }

// InBounds reports whether (x, y) is inside [0,width) x [0,height).
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Pixel returns the color at (x, y), or 0 when out of bounds.
func (b *Buffer) Pixel(x, y int) Color {
	if !b.InBounds(x, y) {
		return 0
	}
	return b.pix[y*b.width+x]
}

// Set writes c at (x, y). Out-of-bounds writes are skipped and reported as false.
func (b *Buffer) Set(x, y int, c Color) bool {
	if !b.InBounds(x, y) {
		return false
	}
	b.pix[y*b.width+x] = c
	return true
}

// Clear fills the whole buffer with c.
func (b *Buffer) Clear(c Color) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Pix returns the underlying row-major slice. Callers must treat it as
// read-only.
func (b *Buffer) Pix() []Color { return b.pix }

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{width: b.width, height: b.height, pix: make([]Color, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i, c := range b.pix {
		if o.pix[i] != c {
			return false
		}
	}
	return true
}

// Count returns how many pixels hold c.
func (b *Buffer) Count(c Color) int {
	n := 0
	for _, p := range b.pix {
		if p == c {
			n++
		}
	}
	return n
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color { return b.Pixel(x, y) }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return ColorModel }

package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorChannels(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	assert.Equal(t, Color(0x123456), c)
	r, g, b := c.Channels()
	assert.Equal(t, []uint8{0x12, 0x34, 0x56}, []uint8{r, g, b})
	assert.Equal(t, "#123456", c.String())

	r32, g32, b32, a32 := Yellow.RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0, 0xffff}, []uint32{r32, g32, b32, a32})
}

func TestColorModel(t *testing.T) {
	got := ColorModel.Convert(color.RGBA{R: 0xFF, G: 0x80, B: 0x01, A: 0xFF})
	assert.Equal(t, Color(0xFF8001), got)
	assert.Equal(t, Green, ColorModel.Convert(Green))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#00FF00", Green},
		{"#ffff00", Yellow},
		{"0xFFFFFF", White},
		{"0X0000ff", Blue},
		{"ff0000", Red},
		{"  #123456 ", 0x123456},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	for _, bad := range []string{"", "#12", "0x1234567", "#GGGGGG", "0xZZZZZZ", "red"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestPolygonBounds(t *testing.T) {
	lo, hi, ok := Poly(5, 1, -2, 7, 3, 3).Bounds()
	require.True(t, ok)
	assert.Equal(t, Pt(-2, 1), lo)
	assert.Equal(t, Pt(5, 7), hi)

	_, _, ok = Polygon(nil).Bounds()
	assert.False(t, ok)
}

func TestPoly(t *testing.T) {
	assert.Equal(t, Polygon{{1, 2}, {3, 4}}, Poly(1, 2, 3, 4, 5))
}

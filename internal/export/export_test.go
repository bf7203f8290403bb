package export

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"polyfill/internal/raster"
)

func sample(t *testing.T) *raster.Buffer {
	t.Helper()
	buf, err := raster.NewBuffer(10, 10, raster.White)
	require.NoError(t, err)
	raster.FillPolygon(buf, raster.Poly(1, 1, 8, 1, 8, 8, 1, 8), raster.Yellow, raster.Poly(3, 3, 6, 3, 6, 6, 3, 6))
	buf.Set(0, 9, 0x123456)
	return buf
}

func assertSamePixels(t *testing.T, buf *raster.Buffer, img image.Image) {
	t.Helper()
	require.Equal(t, buf.Bounds(), img.Bounds())
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			got := raster.ColorModel.Convert(img.At(x, y))
			require.Equal(t, buf.Pixel(x, y), got, "(%d,%d)", x, y)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"out.png":      PNG,
		"OUT.PNG":      PNG,
		"a/b/c.jpg":    JPEG,
		"x.jpeg":       JPEG,
		"x.gif":        GIF,
		"x.tif":        TIFF,
		"x.tiff":       TIFF,
		"poligono.bmp": BMP,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	for _, bad := range []string{"out", "out.webp", "out.txt"} {
		_, err := FormatFromPath(bad)
		assert.ErrorIs(t, err, ErrUnknownFormat, bad)
	}
}

func TestToRGBAChannels(t *testing.T) {
	buf := sample(t)
	img := ToRGBA(buf)
	o := img.PixOffset(0, 9)
	assert.Equal(t, []uint8{0x12, 0x34, 0x56, 0xFF}, img.Pix[o:o+4])
	assertSamePixels(t, buf, img)
}

func TestSavePNGRoundTrip(t *testing.T) {
	buf := sample(t)
	path := filepath.Join(t.TempDir(), "poly.png")
	require.NoError(t, Save(path, buf))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assertSamePixels(t, buf, img)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poly.png")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 1<<16), 0o644))
	require.NoError(t, Save(path, sample(t)))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(b))
	assert.NoError(t, err)
}

func TestWriteLosslessFormats(t *testing.T) {
	buf := sample(t)

	var b bytes.Buffer
	require.NoError(t, Write(&b, buf, BMP))
	img, err := bmp.Decode(&b)
	require.NoError(t, err)
	assertSamePixels(t, buf, img)

	b.Reset()
	require.NoError(t, Write(&b, buf, TIFF))
	img, err = tiff.Decode(&b)
	require.NoError(t, err)
	assertSamePixels(t, buf, img)
}

func TestWriteLossyFormats(t *testing.T) {
	for _, f := range []Format{JPEG, GIF} {
		var b bytes.Buffer
		require.NoError(t, Write(&b, sample(t), f))
		assert.NotZero(t, b.Len(), f.String())
	}
	assert.ErrorIs(t, Write(&bytes.Buffer{}, sample(t), None), ErrUnknownFormat)
}

func TestSaveErrors(t *testing.T) {
	buf := sample(t)
	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.webp"), buf), ErrUnknownFormat)
	err := Save(filepath.Join(t.TempDir(), "missing", "dir", "x.png"), buf)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

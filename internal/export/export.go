// Package export writes a finished pixel buffer to an image file.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"polyfill/internal/logx"
	"polyfill/internal/raster"
)

// ErrUnknownFormat is returned for file extensions with no encoder.
var ErrUnknownFormat = errors.New("export: unknown image format")

// Format is an image encoding.
type Format int32

const (
	None Format = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	}
	return "none"
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ToRGBA unpacks every color into an opaque RGBA image: red from bits
// 16-23, green from 8-15, blue from 0-7.
func ToRGBA(buf *raster.Buffer) *image.RGBA {
	w, h := buf.Width(), buf.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range buf.Pix() {
		r, g, b := c.Channels()
		o := i * 4
		img.Pix[o+0] = r
		img.Pix[o+1] = g
		img.Pix[o+2] = b
		img.Pix[o+3] = 0xFF
	}
	return img
}

// Write encodes buf to w.
func Write(w io.Writer, buf *raster.Buffer, f Format) error {
	img := ToRGBA(buf)
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case GIF:
		return gif.Encode(w, img, nil)
	case TIFF:
		return tiff.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Save writes buf to path in the format implied by its extension,
// overwriting any existing file.
func Save(path string, buf *raster.Buffer) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	bw := bufio.NewWriter(file)
	if err := Write(bw, buf, f); err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logx.L().Info("image exported", "path", path, "format", f.String(),
		"size", fmt.Sprintf("%dx%d", buf.Width(), buf.Height()))
	return nil
}

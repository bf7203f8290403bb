package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyfill/internal/raster"
	"polyfill/internal/scene"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRenderAndExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hole.png")
	stdout, _, err := execute(t, "--no-window", "-o", path, "yellow-hole")
	require.NoError(t, err)
	assert.Contains(t, stdout, "yellow-hole: 1 fills")
	assert.Contains(t, stdout, "wrote "+path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, raster.Yellow, raster.ColorModel.Convert(img.At(320, 300)))
	assert.Equal(t, raster.White, raster.ColorModel.Convert(img.At(410, 300)))
}

func TestDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	_, _, err := execute(t, "--no-window")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "green.png"))
	assert.NoError(t, err)
}

func TestNoExport(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	stdout, _, err := execute(t, "--no-window", "--no-export", "mixed")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "wrote")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSceneFromFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tri.wkt")
	require.NoError(t, os.WriteFile(src, []byte("POLYGON((10 10, 90 10, 50 80))"), 0o644))
	out := filepath.Join(dir, "tri.bmp")
	stdout, _, err := execute(t, "--no-window", "-o", out, src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "tri: 1 fills")
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestInclusiveSpansWriteMore(t *testing.T) {
	half, _, err := execute(t, "--no-window", "--no-export", "green")
	require.NoError(t, err)
	incl, _, err := execute(t, "--no-window", "--no-export", "--inclusive-spans", "green")
	require.NoError(t, err)
	assert.NotEqual(t, half, incl)
}

func TestErrors(t *testing.T) {
	_, _, err := execute(t, "--no-window", "no-such-scene")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)

	_, _, err = execute(t, "--no-window", "--mode", "sixel", "green")
	assert.ErrorContains(t, err, "render mode")

	_, _, err = execute(t, "--no-window", "--log-level", "loud", "green")
	assert.Error(t, err)

	_, _, err = execute(t, "--no-window", "-o", filepath.Join(t.TempDir(), "x.webp"), "green")
	assert.Error(t, err)

	_, _, err = execute(t, "a", "b")
	assert.Error(t, err)
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "run.log")
	_, stderr, err := execute(t, "--no-window", "--no-export", "--log-file", logPath, "--log-level", "debug", "mixed")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "scene rendered")
	assert.Contains(t, string(b), "fill polygon")
}

func TestScenesCommand(t *testing.T) {
	stdout, _, err := execute(t, "scenes")
	require.NoError(t, err)
	for _, name := range scene.Names() {
		assert.Contains(t, stdout, name)
	}

	stdout, _, err = execute(t, "scenes", "yellow-hole")
	require.NoError(t, err)
	s, err := scene.DecodeTOML(bytes.NewBufferString(stdout), "x")
	require.NoError(t, err)
	assert.Equal(t, "yellow-hole", s.Name)
	assert.Len(t, s.Fills, 1)

	_, _, err = execute(t, "scenes", "nope")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

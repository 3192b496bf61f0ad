package psytext

import (
	"errors"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePNGConfig(t *testing.T, path string) image.Config {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	return cfg
}

func TestRenderAffectGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")

	require.NoError(t, RenderAffectGrid(sampleRecords(), path))

	cfg := decodePNGConfig(t, path)
	assert.Greater(t, cfg.Width, 0)
	assert.Equal(t, cfg.Width, cfg.Height, "affect grid should be square")
}

func TestRenderTrajectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.png")

	require.NoError(t, RenderTrajectory(sampleRecords(), path))

	cfg := decodePNGConfig(t, path)
	assert.Equal(t, cfg.Width, 2*cfg.Height, "trajectory should be twice as wide as it is tall")
}

func TestRenderTrajectorySingleRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.png")

	require.NoError(t, RenderTrajectory(sampleRecords()[:1], path))
	assert.FileExists(t, path)
}

func TestRenderChartsRejectEmpty(t *testing.T) {
	dir := t.TempDir()
	var renderErr *RenderError

	err := RenderAffectGrid(nil, filepath.Join(dir, "grid.png"))
	assert.True(t, errors.As(err, &renderErr))

	err = RenderTrajectory(nil, filepath.Join(dir, "trajectory.png"))
	assert.True(t, errors.As(err, &renderErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be written for empty input")
}

func TestRenderChartWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	path := filepath.Join(blocker, "grid.png")

	err := RenderAffectGrid(sampleRecords(), path)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Error(t, renderErr.Cause)
	assert.NoFileExists(t, path)
}

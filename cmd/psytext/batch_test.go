package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/psytext"
)

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", "I love this. It is great.")
	b := writeInput(t, dir, "b.txt", "I hate this. It is terrible.")
	c := writeInput(t, dir, "c.txt", "Nothing works. Everything is broken.")
	outDir := filepath.Join(dir, "out")

	out, err := executeCommand(t, "batch", a, b, c, "--out-dir", outDir, "--workers", "2")

	require.NoError(t, err)
	for _, base := range []string{"a", "b", "c"} {
		assert.FileExists(t, filepath.Join(outDir, base+psytext.HTMLSuffix))
		assert.FileExists(t, filepath.Join(outDir, base+psytext.JSONSuffix))
		assert.Contains(t, out, "== "+filepath.Join(dir, base+".txt"))
	}
}

func TestBatchCommand_DuplicateBaseNames(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "notes.txt", "One.")
	second := writeInput(t, dir, "notes.md", "Two.")

	_, err := executeCommand(t, "batch", first, second, "--out-dir", dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `would both write outputs named "notes"`)
}

func TestBatchCommand_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "good.txt", "What a lovely day.")
	empty := writeInput(t, dir, "empty.txt", "")
	outDir := filepath.Join(dir, "out")

	out, err := executeCommand(t, "batch", good, empty, "--out-dir", outDir)

	require.Error(t, err)
	assert.ErrorIs(t, err, psytext.ErrEmptyInput)
	assert.Contains(t, out, "== "+good, "the readable file is still analyzed")
	assert.FileExists(t, filepath.Join(outDir, "good"+psytext.HTMLSuffix))
}

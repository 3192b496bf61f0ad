package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/psytext"
)

func TestAnalyzeCommand_Text(t *testing.T) {
	outDir := t.TempDir()

	out, err := executeCommand(t, "analyze", "--text", "I am happy. I am sad.", "--base", "diary", "--out-dir", outDir)

	require.NoError(t, err)
	assert.Contains(t, out, "sentences: 2 (positive 1, negative 1, neutral 0)")
	for _, suffix := range []string{psytext.HTMLSuffix, psytext.AffectGridSuffix, psytext.TrajectorySuffix, psytext.JSONSuffix} {
		assert.FileExists(t, filepath.Join(outDir, "diary"+suffix))
	}
	assert.NoFileExists(t, filepath.Join(outDir, "diary"+psytext.CSVSuffix))
}

func TestAnalyzeCommand_FileWithCSV(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "journal.txt", "We went out. They were kind to us. I felt great!")
	outDir := filepath.Join(dir, "out")

	out, err := executeCommand(t, "analyze", input, "--out-dir", outDir, "--csv")

	require.NoError(t, err)
	assert.Contains(t, out, "journal"+psytext.HTMLSuffix)

	csvPath := filepath.Join(outDir, "journal"+psytext.CSVSuffix)
	require.FileExists(t, csvPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "pronoun_first_person_plural")
	assert.Contains(t, lines[0], "num_sentences")
}

func TestAnalyzeCommand_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "blank.txt", "   \n\t")

	_, err := executeCommand(t, "analyze", input, "--out-dir", dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, psytext.ErrEmptyInput)
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "analyze", filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestAnalyzeCommand_NoInput(t *testing.T) {
	_, err := executeCommand(t, "analyze")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must provide an input file or --text")
}

func TestAnalyzeCommand_TextAndFile(t *testing.T) {
	_, err := executeCommand(t, "analyze", "input.txt", "--text", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use --text with an input file")
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes/day1.txt", "day1"},
		{"article.html", "article"},
		{"README", "README"},
		{"/", psytext.DefaultBaseName},
		{"//", psytext.DefaultBaseName},
		{"notes/", "notes"},
		{"notes/.txt", psytext.DefaultBaseName},
		{".", psytext.DefaultBaseName},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, baseName(tt.path))
		})
	}
}

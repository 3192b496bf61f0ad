package psytext

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/text/unicode/norm"
)

// maxInputSize bounds how much of an input file is read.
const maxInputSize = 32 << 20

// Input is source text ready for analysis.
type Input struct {
	Title string // article title for HTML sources, else empty
	Text  string // NFC-normalized text
}

// ReadInput loads the text at path. HTML files (.html, .htm) are reduced to
// their main article text; everything else must be UTF-8 text.
func ReadInput(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("error opening input: %w", err)
	}
	defer f.Close()

	return ReadInputFrom(f, path)
}

// ReadInputFrom reads source text from r; name selects the format by extension.
func ReadInputFrom(r io.Reader, name string) (Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return Input{}, fmt.Errorf("error reading input: %w", err)
	}
	if len(data) > maxInputSize {
		return Input{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrUnsupportedInput, name, maxInputSize)
	}

	var in Input
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		in, err = extractArticle(data, name)
		if err != nil {
			return Input{}, err
		}
	default:
		if !utf8.Valid(data) {
			return Input{}, fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupportedInput, name)
		}
		in.Text = string(data)
	}

	in.Text = norm.NFC.String(in.Text)
	if strings.TrimSpace(in.Text) == "" {
		return Input{}, ErrEmptyInput
	}
	return in, nil
}

// NormalizeText NFC-normalizes text passed directly, rejecting empty input.
func NormalizeText(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedInput)
	}
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	return text, nil
}

func extractArticle(data []byte, name string) (Input, error) {
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(name)}
	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return Input{}, fmt.Errorf("%w: failed to extract article from %s: %v", ErrUnsupportedInput, name, err)
	}
	return Input{Title: strings.TrimSpace(article.Title), Text: article.TextContent}, nil
}

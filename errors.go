package psytext

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the source text is empty or only whitespace.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrUnsupportedInput is returned for input files that cannot be read as text.
	ErrUnsupportedInput = errors.New("unsupported input")
	// ErrMalformedSentence is returned when a sentence cannot be scored.
	ErrMalformedSentence = errors.New("malformed sentence")
	// ErrNoWords is returned by statistics that are undefined for text without words.
	ErrNoWords = errors.New("text contains no words")
)

// RenderError represents a failure producing the HTML report or a chart.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError represents a failure writing the JSON or CSV exports.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

package psytext

import (
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Segmenter splits raw text into sentences.
type Segmenter interface {
	Segment(text string) []Sentence
}

// punktSegmenter wraps the English punkt model. Text is always segmented with
// English boundary rules regardless of its actual language.
type punktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

var englishTokenizer = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// NewPunktSegmenter returns the default English sentence segmenter.
func NewPunktSegmenter() (Segmenter, error) {
	return newPunktSentenceTokenizer()
}

func newPunktSentenceTokenizer() (*punktSegmenter, error) {
	tok, err := englishTokenizer()
	if err != nil {
		return nil, err
	}
	return &punktSegmenter{tokenizer: tok}, nil
}

// Segment returns the trimmed, non-empty sentences of text in reading order.
func (p *punktSegmenter) Segment(text string) []Sentence {
	return p.segmentWithOffsets(text)
}

func (p *punktSegmenter) segmentWithOffsets(text string) []Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []Sentence
	for _, s := range p.tokenizer.Tokenize(text) {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		lead := strings.Index(s.Text, trimmed)
		out = append(out, Sentence{
			Text:  trimmed,
			Start: s.Start + lead,
			End:   s.Start + lead + len(trimmed),
		})
	}
	return out
}

// SegmentText splits text with the default segmenter and returns the sentence
// strings only.
func SegmentText(text string) ([]string, error) {
	seg, err := newPunktSentenceTokenizer()
	if err != nil {
		return nil, err
	}
	sents := seg.Segment(text)
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.Text
	}
	return out, nil
}

package psytext

import (
	"encoding/json"
	"strconv"
)

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Text  string // The token's actual content.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string // The sentence's trimmed text.
	Start int    // Start position in original text
	End   int    // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// ColorBucket is the discrete sentiment-intensity category used for report coloring.
type ColorBucket string

const (
	VeryPositive     ColorBucket = "very_positive"
	Positive         ColorBucket = "positive"
	SlightlyPositive ColorBucket = "slightly_positive"
	Neutral          ColorBucket = "neutral"
	SlightlyNegative ColorBucket = "slightly_negative"
	Negative         ColorBucket = "negative"
	VeryNegative     ColorBucket = "very_negative"
)

// ColorBuckets lists every bucket from most positive to most negative.
var ColorBuckets = []ColorBucket{
	VeryPositive, Positive, SlightlyPositive, Neutral, SlightlyNegative, Negative, VeryNegative,
}

// Polarity is the three-way classification used by the aggregate counts.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

// PolarityScores holds the raw output of the lexicon scorer for one sentence.
// Neg, Neu and Pos are proportions of the sentence (they sum to 1, or are all
// zero when the sentence had no scorable tokens); Compound is the normalized
// overall polarity in [-1, 1].
type PolarityScores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// SentenceRecord is the per-sentence affect result. Records are created once
// by the scorer and never modified; slices of records keep source order.
type SentenceRecord struct {
	Text        string      `json:"text" jsonschema:"required"`
	Valence     float64     `json:"valence" jsonschema:"required,minimum=-1,maximum=1"`
	Arousal     float64     `json:"arousal" jsonschema:"required,minimum=0"`
	ColorBucket ColorBucket `json:"colorBucket" jsonschema:"required,enum=very_positive,enum=positive,enum=slightly_positive,enum=neutral,enum=slightly_negative,enum=negative,enum=very_negative"`
}

// Metric is a statistic that may be unavailable because its computation
// failed. Unavailable metrics render and serialize as "N/A".
type Metric struct {
	Value float64
	Valid bool
}

// NotAvailable is the sentinel for a statistic that could not be computed.
var NotAvailable = Metric{}

// Available wraps a computed value.
func Available(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// String formats the metric for reports and CSV output.
func (m Metric) String() string {
	if !m.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON encodes valid metrics as numbers and unavailable ones as "N/A".
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte(`"N/A"`), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts either a number or the "N/A" string.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = NotAvailable
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Available(v)
	return nil
}

// AggregateStats are the corpus-level statistics for one analysis run.
type AggregateStats struct {
	NumSentences int     `json:"num_sentences"`
	MeanValence  float64 `json:"mean_valence"`
	MeanArousal  float64 `json:"mean_arousal"`

	PositiveCount int `json:"positive_count"`
	NegativeCount int `json:"negative_count"`
	NeutralCount  int `json:"neutral_count"`

	PositivePercent float64 `json:"positive_percent"`
	NegativePercent float64 `json:"negative_percent"`
	NeutralPercent  float64 `json:"neutral_percent"`

	// Descriptors computed from the raw text, independent of the scored records.
	TotalWords          Metric `json:"total_words"`
	AvgWordsPerSentence Metric `json:"avg_words_per_sentence"`
	TypeTokenRatio      Metric `json:"type_token_ratio"`
	RawSentenceCount    Metric `json:"raw_sentence_count"`

	FleschReadingEase Metric `json:"flesch_reading_ease"`
	LexicalDensity    Metric `json:"lexical_density"`

	PronounCounts map[string]int `json:"pronoun_counts"`
}

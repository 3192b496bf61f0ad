package psytext

import (
	"fmt"
	"log/slog"
	"math"
	"unicode/utf8"
)

// Valence thresholds separating the three polarity classes.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer turns sentences into SentenceRecords.
type Scorer struct {
	analyzer *SentimentAnalyzer
	logger   *slog.Logger
}

// NewScorer creates a scorer over lex. A nil logger uses slog.Default().
func NewScorer(lex *Lexicon, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{analyzer: NewSentimentAnalyzer(lex), logger: logger}
}

// Polarity returns the raw neg/neu/pos/compound scores of sentence.
func (s *Scorer) Polarity(sentence string) (PolarityScores, error) {
	if !utf8.ValidString(sentence) {
		return PolarityScores{}, fmt.Errorf("%w: invalid UTF-8", ErrMalformedSentence)
	}
	return s.analyzer.PolarityScores(sentence), nil
}

// Score computes the affect record of one sentence.
func (s *Scorer) Score(sentence string) (SentenceRecord, error) {
	ps, err := s.Polarity(sentence)
	if err != nil {
		return SentenceRecord{}, err
	}
	return SentenceRecord{
		Text:        sentence,
		Valence:     ps.Compound,
		Arousal:     Arousal(ps),
		ColorBucket: BucketFor(ps.Compound),
	}, nil
}

// ScoreAll scores every sentence in order. Sentences that fail to score are
// logged and left out; the remaining records keep their relative order.
func (s *Scorer) ScoreAll(sentences []string) []SentenceRecord {
	records := make([]SentenceRecord, 0, len(sentences))
	for i, sentence := range sentences {
		rec, err := s.Score(sentence)
		if err != nil {
			s.logger.Warn("skipping sentence", "index", i, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Arousal is the spread between the largest and smallest of the neg, neu and
// pos fractions.
func Arousal(ps PolarityScores) float64 {
	hi := math.Max(ps.Neg, math.Max(ps.Neu, ps.Pos))
	lo := math.Min(ps.Neg, math.Min(ps.Neu, ps.Pos))
	return hi - lo
}

// BucketFor maps a valence to its color bucket. Positive thresholds are
// checked first.
func BucketFor(valence float64) ColorBucket {
	switch {
	case valence >= 0.5:
		return VeryPositive
	case valence >= 0.2:
		return Positive
	case valence >= 0.1:
		return SlightlyPositive
	case valence <= -0.5:
		return VeryNegative
	case valence <= -0.2:
		return Negative
	case valence <= -0.1:
		return SlightlyNegative
	default:
		return Neutral
	}
}

// PolarityOf classifies a valence as positive, negative or neutral.
func PolarityOf(valence float64) Polarity {
	switch {
	case valence >= positiveThreshold:
		return PolarityPositive
	case valence <= negativeThreshold:
		return PolarityNegative
	default:
		return PolarityNeutral
	}
}

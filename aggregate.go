package psytext

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// PronounCategory is a named set of pronoun forms.
type PronounCategory struct {
	Name  string
	Forms []string
}

// DefaultPronounCategories returns the English pronoun categories in report
// order. "it" only appears in third_person_singular_neutral.
func DefaultPronounCategories() []PronounCategory {
	return []PronounCategory{
		{Name: "first_person_singular", Forms: []string{"i", "me", "my", "mine", "myself"}},
		{Name: "first_person_plural", Forms: []string{"we", "us", "our", "ours", "ourselves"}},
		{Name: "second_person", Forms: []string{"you", "your", "yours", "yourself", "yourselves"}},
		{Name: "third_person_singular_masc", Forms: []string{"he", "him", "his", "himself"}},
		{Name: "third_person_singular_fem", Forms: []string{"she", "her", "hers", "herself"}},
		{Name: "third_person_singular_neutral", Forms: []string{"it", "its", "itself"}},
		{Name: "third_person_plural", Forms: []string{"they", "them", "their", "theirs", "themselves"}},
	}
}

// Aggregator computes corpus-level statistics from scored records and the
// raw text they came from.
type Aggregator struct {
	tokenizer Tokenizer
	segmenter Segmenter
	logger    *slog.Logger
}

// NewAggregator creates an aggregator. The segmenter provides the sentence
// count used by the text descriptors and readability score; it is independent
// of how many records were scored. Nil arguments fall back to the defaults.
func NewAggregator(tok Tokenizer, seg Segmenter, logger *slog.Logger) *Aggregator {
	if tok == nil {
		tok = NewIterTokenizer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if seg == nil {
		if punkt, err := NewPunktSegmenter(); err == nil {
			seg = punkt
		} else {
			logger.Warn("sentence segmenter unavailable", "error", err)
		}
	}
	return &Aggregator{tokenizer: tok, segmenter: seg, logger: logger}
}

// Aggregate builds the statistics for one analysis run. Statistics that
// cannot be computed are set to NotAvailable; aggregation never fails.
func (a *Aggregator) Aggregate(records []SentenceRecord, rawText string, categories []PronounCategory) AggregateStats {
	stats := AggregateStats{NumSentences: len(records)}
	a.affect(&stats, records)

	// Pronouns are tallied on whatever text decodes; the descriptors need all of it.
	words := Words(a.tokenizer, strings.ToValidUTF8(rawText, " "))

	if utf8.ValidString(rawText) && a.segmenter != nil {
		rawSentences := len(a.segmenter.Segment(rawText))
		a.descriptors(&stats, words, rawSentences)

		if fre, err := FleschReadingEase(words, rawSentences); err != nil {
			a.logger.Warn("statistic not available", "metric", "flesch_reading_ease", "error", err)
			stats.FleschReadingEase = NotAvailable
		} else {
			stats.FleschReadingEase = Available(fre)
		}

		if ld, err := lexicalDensity(words); err != nil {
			a.logger.Warn("statistic not available", "metric", "lexical_density", "error", err)
			stats.LexicalDensity = NotAvailable
		} else {
			stats.LexicalDensity = Available(ld)
		}
	} else {
		a.logger.Warn("statistic not available", "metric", "text_descriptors", "error", ErrUnsupportedInput)
		stats.TotalWords = NotAvailable
		stats.AvgWordsPerSentence = NotAvailable
		stats.TypeTokenRatio = NotAvailable
		stats.RawSentenceCount = NotAvailable
		stats.FleschReadingEase = NotAvailable
		stats.LexicalDensity = NotAvailable
	}

	stats.PronounCounts = CountPronouns(words, categories)
	return stats
}

func (a *Aggregator) affect(stats *AggregateStats, records []SentenceRecord) {
	n := len(records)
	if n == 0 {
		return
	}

	valences := make([]float64, n)
	arousals := make([]float64, n)
	for i, rec := range records {
		valences[i] = rec.Valence
		arousals[i] = rec.Arousal
		switch PolarityOf(rec.Valence) {
		case PolarityPositive:
			stats.PositiveCount++
		case PolarityNegative:
			stats.NegativeCount++
		}
	}
	stats.NeutralCount = n - stats.PositiveCount - stats.NegativeCount

	stats.MeanValence = stat.Mean(valences, nil)
	stats.MeanArousal = stat.Mean(arousals, nil)

	total := float64(n)
	stats.PositivePercent = float64(stats.PositiveCount) / total * 100
	stats.NegativePercent = float64(stats.NegativeCount) / total * 100
	stats.NeutralPercent = float64(stats.NeutralCount) / total * 100
}

func (a *Aggregator) descriptors(stats *AggregateStats, words []string, rawSentences int) {
	stats.TotalWords = Available(float64(len(words)))
	stats.RawSentenceCount = Available(float64(rawSentences))

	if rawSentences > 0 {
		stats.AvgWordsPerSentence = Available(float64(len(words)) / float64(rawSentences))
	} else {
		stats.AvgWordsPerSentence = Available(0)
	}

	if len(words) == 0 {
		stats.TypeTokenRatio = Available(0)
		return
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	stats.TypeTokenRatio = Available(float64(len(unique)) / float64(len(words)))
}

// lexicalDensity is the share of words that are not English stop words.
func lexicalDensity(words []string) (float64, error) {
	if len(words) == 0 {
		return 0, ErrNoWords
	}
	content := stopwords.CleanString(strings.Join(words, " "), "en", false)
	return scalar.Round(float64(len(strings.Fields(content)))/float64(len(words)), 4), nil
}

// CountPronouns tallies each occurrence of a category's forms in words.
// Matching is case-insensitive; every category is present in the result,
// even with a zero count.
func CountPronouns(words []string, categories []PronounCategory) map[string]int {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[strings.ToLower(w)]++
	}

	counts := make(map[string]int, len(categories))
	for _, cat := range categories {
		n := 0
		for _, form := range cat.Forms {
			n += freq[strings.ToLower(form)]
		}
		counts[cat.Name] += n
	}
	return counts
}

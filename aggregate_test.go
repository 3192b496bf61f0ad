package psytext

import (
	"math"
	"testing"
)

func records(valences ...float64) []SentenceRecord {
	out := make([]SentenceRecord, len(valences))
	for i, v := range valences {
		out[i] = SentenceRecord{Text: "s", Valence: v, Arousal: 0.5, ColorBucket: BucketFor(v)}
	}
	return out
}

func TestAggregateCountsInvariant(t *testing.T) {
	tests := []struct {
		valences []float64
		pos      int
		neg      int
		neu      int
		desc     string
	}{
		{nil, 0, 0, 0, "No records"},
		{[]float64{0.5}, 1, 0, 0, "One positive"},
		{[]float64{0.05, -0.05, 0.0}, 1, 1, 1, "Threshold values"},
		{[]float64{0.04999, -0.04999}, 0, 0, 2, "Just inside neutral"},
		{[]float64{0.9, -0.9, 0.3, -0.3, 0.01}, 2, 2, 1, "Mixed"},
	}

	agg := NewAggregator(nil, nil, nil)

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			stats := agg.Aggregate(records(tt.valences...), "", DefaultPronounCategories())

			if stats.NumSentences != len(tt.valences) {
				t.Errorf("NumSentences = %d, want %d", stats.NumSentences, len(tt.valences))
			}
			if stats.PositiveCount+stats.NegativeCount+stats.NeutralCount != stats.NumSentences {
				t.Errorf("Counts %d+%d+%d do not add up to %d",
					stats.PositiveCount, stats.NegativeCount, stats.NeutralCount, stats.NumSentences)
			}
			if stats.PositiveCount != tt.pos || stats.NegativeCount != tt.neg || stats.NeutralCount != tt.neu {
				t.Errorf("Got pos=%d neg=%d neu=%d, want %d/%d/%d",
					stats.PositiveCount, stats.NegativeCount, stats.NeutralCount, tt.pos, tt.neg, tt.neu)
			}
			if stats.NumSentences > 0 {
				sum := stats.PositivePercent + stats.NegativePercent + stats.NeutralPercent
				if math.Abs(sum-100) > 1e-9 {
					t.Errorf("Percentages sum to %v, want 100", sum)
				}
			}
		})
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := NewAggregator(nil, nil, nil)
	stats := agg.Aggregate(nil, "", DefaultPronounCategories())

	if stats.NumSentences != 0 {
		t.Errorf("NumSentences = %d, want 0", stats.NumSentences)
	}
	for name, v := range map[string]float64{
		"MeanValence":     stats.MeanValence,
		"MeanArousal":     stats.MeanArousal,
		"PositivePercent": stats.PositivePercent,
		"NegativePercent": stats.NegativePercent,
		"NeutralPercent":  stats.NeutralPercent,
	} {
		if v != 0 || math.IsNaN(v) {
			t.Errorf("%s = %v, want 0", name, v)
		}
	}
	if stats.TotalWords != Available(0) || stats.TypeTokenRatio != Available(0) {
		t.Errorf("Expected zero word stats, got %v and %v", stats.TotalWords, stats.TypeTokenRatio)
	}
	if stats.FleschReadingEase.Valid || stats.LexicalDensity.Valid {
		t.Errorf("Readability and density should be N/A without words")
	}
	if len(stats.PronounCounts) != len(DefaultPronounCategories()) {
		t.Errorf("Expected every pronoun category, got %v", stats.PronounCounts)
	}
}

func TestAggregateMeans(t *testing.T) {
	agg := NewAggregator(nil, nil, nil)
	recs := []SentenceRecord{
		{Valence: 0.6, Arousal: 0.2},
		{Valence: -0.2, Arousal: 0.4},
	}

	stats := agg.Aggregate(recs, "", nil)

	if math.Abs(stats.MeanValence-0.2) > 1e-9 {
		t.Errorf("MeanValence = %v, want 0.2", stats.MeanValence)
	}
	if math.Abs(stats.MeanArousal-0.3) > 1e-9 {
		t.Errorf("MeanArousal = %v, want 0.3", stats.MeanArousal)
	}
}

func TestAggregateDescriptors(t *testing.T) {
	agg := NewAggregator(nil, nil, nil)
	text := "I don't know. I know that we know it!"

	stats := agg.Aggregate(nil, text, DefaultPronounCategories())

	// i, do, know, i, know, that, we, know, it
	if stats.TotalWords != Available(9) {
		t.Errorf("TotalWords = %v, want 9", stats.TotalWords)
	}
	if stats.RawSentenceCount != Available(2) {
		t.Errorf("RawSentenceCount = %v, want 2", stats.RawSentenceCount)
	}
	if stats.AvgWordsPerSentence != Available(4.5) {
		t.Errorf("AvgWordsPerSentence = %v, want 4.5", stats.AvgWordsPerSentence)
	}
	if math.Abs(stats.TypeTokenRatio.Value-6.0/9.0) > 1e-9 {
		t.Errorf("TypeTokenRatio = %v, want %v", stats.TypeTokenRatio, 6.0/9.0)
	}
	if !stats.FleschReadingEase.Valid {
		t.Errorf("FleschReadingEase should be available")
	}
	if !stats.LexicalDensity.Valid || stats.LexicalDensity.Value <= 0 || stats.LexicalDensity.Value > 1 {
		t.Errorf("LexicalDensity = %v, want a share in (0,1]", stats.LexicalDensity)
	}

	want := map[string]int{
		"first_person_singular":         2,
		"first_person_plural":           1,
		"third_person_singular_neutral": 1,
		"second_person":                 0,
	}
	for cat, n := range want {
		if stats.PronounCounts[cat] != n {
			t.Errorf("PronounCounts[%s] = %d, want %d", cat, stats.PronounCounts[cat], n)
		}
	}
}

func TestAggregateSentenceCountsAreIndependent(t *testing.T) {
	agg := NewAggregator(nil, nil, nil)
	text := "One sentence here. Another one there. And a third."

	// only one record, as if two sentences failed to score
	stats := agg.Aggregate(records(0.3), text, nil)

	if stats.NumSentences != 1 {
		t.Errorf("NumSentences = %d, want 1", stats.NumSentences)
	}
	if stats.RawSentenceCount != Available(3) {
		t.Errorf("RawSentenceCount = %v, want 3", stats.RawSentenceCount)
	}
}

func TestAggregateInvalidUTF8(t *testing.T) {
	agg := NewAggregator(nil, nil, nil)

	stats := agg.Aggregate(records(0.3, -0.3), "bad \xff text", DefaultPronounCategories())

	if stats.NumSentences != 2 || stats.PositiveCount != 1 || stats.NegativeCount != 1 {
		t.Errorf("Affect statistics should survive a descriptor failure: %+v", stats)
	}
	for name, m := range map[string]Metric{
		"TotalWords":          stats.TotalWords,
		"AvgWordsPerSentence": stats.AvgWordsPerSentence,
		"TypeTokenRatio":      stats.TypeTokenRatio,
		"RawSentenceCount":    stats.RawSentenceCount,
		"FleschReadingEase":   stats.FleschReadingEase,
		"LexicalDensity":      stats.LexicalDensity,
	} {
		if m.Valid {
			t.Errorf("%s should be N/A, got %v", name, m)
		}
	}
}

func TestAggregateInvalidUTF8CountsPronouns(t *testing.T) {
	agg := NewAggregator(nil, nil, nil)

	stats := agg.Aggregate(nil, "I told \xff them that we\xfe were fine.", DefaultPronounCategories())

	want := map[string]int{
		"first_person_singular": 1,
		"first_person_plural":   1,
		"third_person_plural":   1,
		"second_person":         0,
	}
	for cat, n := range want {
		if stats.PronounCounts[cat] != n {
			t.Errorf("PronounCounts[%s] = %d, want %d", cat, stats.PronounCounts[cat], n)
		}
	}
	if stats.TotalWords.Valid {
		t.Errorf("TotalWords should stay N/A, got %v", stats.TotalWords)
	}
}

func TestCountPronouns(t *testing.T) {
	categories := []PronounCategory{
		{Name: "mine", Forms: []string{"I", "me"}},
		{Name: "theirs", Forms: []string{"they", "them"}},
	}
	words := []string{"i", "told", "them", "that", "they", "saw", "me", "and", "I", "left"}

	got := CountPronouns(words, categories)

	if got["mine"] != 3 {
		t.Errorf("mine = %d, want 3", got["mine"])
	}
	if got["theirs"] != 2 {
		t.Errorf("theirs = %d, want 2", got["theirs"])
	}
}

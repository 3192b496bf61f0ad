package psytext

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sort"
	"strconv"
	"strings"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// BucketStyle is the CSS background and text color of a bucket.
type BucketStyle struct {
	Background string
	Foreground string
}

var bucketStyles = map[ColorBucket]BucketStyle{
	VeryPositive:     {Background: "darkgreen", Foreground: "white"},
	Positive:         {Background: "green", Foreground: "white"},
	SlightlyPositive: {Background: "lightgreen", Foreground: "black"},
	Neutral:          {Background: "orange", Foreground: "black"},
	SlightlyNegative: {Background: "lightcoral", Foreground: "black"},
	Negative:         {Background: "red", Foreground: "white"},
	VeryNegative:     {Background: "darkred", Foreground: "white"},
}

// StyleFor returns the report colors of bucket. Unknown buckets get the
// neutral style.
func StyleFor(bucket ColorBucket) BucketStyle {
	if s, ok := bucketStyles[bucket]; ok {
		return s
	}
	return bucketStyles[Neutral]
}

type sentenceView struct {
	Text    string
	Bucket  ColorBucket
	Valence string
	Arousal string
	BucketStyle
}

type legendView struct {
	Label string
	BucketStyle
}

type statView struct {
	Key   string
	Label string
	Value string
}

type reportView struct {
	Title     string
	Legend    []legendView
	Sentences []sentenceView
	Stats     []statView
	Pronouns  []statView
}

// statField is one flattened statistic, shared by the HTML report and the CSV export.
type statField struct {
	Key       string
	Label     string
	Value     Metric
	Precision int
}

func statFields(stats AggregateStats) []statField {
	count := func(n int) Metric { return Available(float64(n)) }
	return []statField{
		{"num_sentences", "Sentences", count(stats.NumSentences), 0},
		{"mean_valence", "Mean valence", Available(stats.MeanValence), 3},
		{"mean_arousal", "Mean arousal", Available(stats.MeanArousal), 3},
		{"positive_count", "Positive sentences", count(stats.PositiveCount), 0},
		{"negative_count", "Negative sentences", count(stats.NegativeCount), 0},
		{"neutral_count", "Neutral sentences", count(stats.NeutralCount), 0},
		{"positive_percent", "Positive (%)", Available(stats.PositivePercent), 2},
		{"negative_percent", "Negative (%)", Available(stats.NegativePercent), 2},
		{"neutral_percent", "Neutral (%)", Available(stats.NeutralPercent), 2},
		{"total_words", "Total words", stats.TotalWords, 0},
		{"avg_words_per_sentence", "Average words per sentence", stats.AvgWordsPerSentence, 2},
		{"type_token_ratio", "Type-token ratio", stats.TypeTokenRatio, 3},
		{"raw_sentence_count", "Sentences (raw segmentation)", stats.RawSentenceCount, 0},
		{"flesch_reading_ease", "Flesch reading ease", stats.FleschReadingEase, 2},
		{"lexical_density", "Lexical density", stats.LexicalDensity, 3},
	}
}

// sortedPronouns returns the pronoun categories in alphabetical order.
func sortedPronouns(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatMetric(m Metric, precision int) string {
	if !m.Valid {
		return NotAvailable.String()
	}
	return strconv.FormatFloat(m.Value, 'f', precision, 64)
}

func newReportView(title string, records []SentenceRecord, stats AggregateStats) reportView {
	view := reportView{Title: title}

	for _, b := range ColorBuckets {
		view.Legend = append(view.Legend, legendView{
			Label:       strings.ReplaceAll(string(b), "_", " "),
			BucketStyle: StyleFor(b),
		})
	}

	for _, rec := range records {
		view.Sentences = append(view.Sentences, sentenceView{
			Text:        rec.Text,
			Bucket:      rec.ColorBucket,
			Valence:     strconv.FormatFloat(rec.Valence, 'f', 3, 64),
			Arousal:     strconv.FormatFloat(rec.Arousal, 'f', 3, 64),
			BucketStyle: StyleFor(rec.ColorBucket),
		})
	}

	for _, f := range statFields(stats) {
		view.Stats = append(view.Stats, statView{Key: f.Key, Label: f.Label, Value: formatMetric(f.Value, f.Precision)})
	}
	for _, name := range sortedPronouns(stats.PronounCounts) {
		view.Pronouns = append(view.Pronouns, statView{
			Key:   "pronoun_" + name,
			Label: strings.ReplaceAll(name, "_", " "),
			Value: strconv.Itoa(stats.PronounCounts[name]),
		})
	}
	return view
}

// WriteHTML renders the colored-sentence report to w.
func WriteHTML(w io.Writer, title string, records []SentenceRecord, stats AggregateStats) error {
	if err := reportTemplate.Execute(w, newReportView(title, records, stats)); err != nil {
		return &RenderError{Message: "failed to execute report template", Cause: err}
	}
	return nil
}

// RenderHTML renders the report in memory and writes it atomically to path.
func RenderHTML(path, title string, records []SentenceRecord, stats AggregateStats) error {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, title, records, stats); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return &RenderError{Message: "failed to write " + path, Cause: err}
	}
	return nil
}

package psytext

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []SentenceRecord {
	return []SentenceRecord{
		{Text: "Café <b>& friends</b> were lovely.", Valence: 0.5859, Arousal: 0.524, ColorBucket: VeryPositive},
		{Text: "Nothing felt right.", Valence: -0.1027, Arousal: 0.48, ColorBucket: SlightlyNegative},
		{Text: "The weather today.", Valence: 0, Arousal: 1, ColorBucket: Neutral},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, want))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteJSONFormatting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()[:1]))
	out := buf.String()

	assert.Contains(t, out, "Café <b>& friends</b>", "non-ASCII and HTML characters should not be escaped")
	assert.Contains(t, out, "\n    {\n        \"text\"", "four-space indentation expected")
	assert.Contains(t, out, `"colorBucket": "very_positive"`)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestValidateAnalysisJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))
	assert.NoError(t, ValidateAnalysisJSON(buf.Bytes()))
	assert.NoError(t, ValidateAnalysisJSON([]byte("[]")))

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown bucket", `[{"text":"x","valence":0,"arousal":0,"colorBucket":"purple"}]`},
		{"valence out of range", `[{"text":"x","valence":1.5,"arousal":0,"colorBucket":"neutral"}]`},
		{"negative arousal", `[{"text":"x","valence":0,"arousal":-0.1,"colorBucket":"neutral"}]`},
		{"missing field", `[{"text":"x","valence":0,"colorBucket":"neutral"}]`},
		{"not an array", `{"text":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnalysisJSON([]byte(tt.doc))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
		})
	}
}

func TestExportJSONWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run"+JSONSuffix)

	require.NoError(t, ExportJSON(path, sampleRecords(), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := ReadJSON(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestExportJSONValidationFailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+JSONSuffix)
	bad := []SentenceRecord{{Text: "x", Valence: 0, Arousal: 0, ColorBucket: "purple"}}

	err := ExportJSON(path, bad, true)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.NoFileExists(t, path)
}

func TestWriteCSV(t *testing.T) {
	stats := AggregateStats{
		NumSentences:      2,
		PositiveCount:     1,
		NegativeCount:     1,
		PositivePercent:   50,
		NegativePercent:   50,
		TotalWords:        Available(8),
		TypeTokenRatio:    Available(0.75),
		FleschReadingEase: NotAvailable,
		PronounCounts:     map[string]int{"second_person": 2, "first_person_singular": 3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, stats))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, len(rows[0]), len(rows[1]))

	row := make(map[string]string, len(rows[0]))
	for i, key := range rows[0] {
		row[key] = rows[1][i]
	}
	assert.Equal(t, "2", row["num_sentences"])
	assert.Equal(t, "50", row["positive_percent"])
	assert.Equal(t, "8", row["total_words"])
	assert.Equal(t, "0.75", row["type_token_ratio"])
	assert.Equal(t, "N/A", row["flesch_reading_ease"])
	assert.Equal(t, "N/A", row["avg_words_per_sentence"])
	assert.Equal(t, "3", row["pronoun_first_person_singular"])
	assert.Equal(t, "2", row["pronoun_second_person"])

	header := strings.Join(rows[0], ",")
	assert.Less(t, strings.Index(header, "pronoun_first_person_singular"), strings.Index(header, "pronoun_second_person"))
}

func TestAnalysisSchema(t *testing.T) {
	b, err := AnalysisSchemaJSON()
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, `"type": "array"`)
	for _, field := range []string{"text", "valence", "arousal", "colorBucket"} {
		assert.Contains(t, s, `"`+field+`"`)
	}
	for _, b := range ColorBuckets {
		assert.Contains(t, s, string(b))
	}
}

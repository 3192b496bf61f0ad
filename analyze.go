package psytext

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Output file suffixes, appended to the base filename.
const (
	HTMLSuffix       = "_emotions.html"
	AffectGridSuffix = "_affect_grid.png"
	TrajectorySuffix = "_sentiment_trajectory.png"
	JSONSuffix       = "_analysis.json"
	CSVSuffix        = "_statistics.csv"

	// DefaultBaseName is used when no base filename is given.
	DefaultBaseName = "analysis_default"
)

// An AnalyzerOpt represents a setting that changes the analysis process.
//
// For example, it might disable chart rendering:
//
//	a, err := psytext.NewAnalyzer(psytext.WithCharts(false))
type AnalyzerOpt func(opts *AnalyzerOpts)

// AnalyzerOpts controls the Analyzer:
type AnalyzerOpts struct {
	Lexicon           *Lexicon          // Lexicon to score against
	Segmenter         Segmenter         // Sentence segmenter
	Tokenizer         Tokenizer         // Word tokenizer for the text descriptors
	PronounCategories []PronounCategory // Categories tallied in the statistics
	OutputDir         string            // Directory receiving every output file
	Charts            bool              // If true, render the affect grid and trajectory
	CSV               bool              // If true, write the statistics CSV
	ValidateJSON      bool              // If true, validate the JSON export against its schema
	Logger            *slog.Logger
}

// UsingLexicon specifies the Lexicon to score against.
func UsingLexicon(lex *Lexicon) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.Lexicon = lex
	}
}

// UsingSegmenter specifies the sentence Segmenter to use.
func UsingSegmenter(seg Segmenter) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.Segmenter = seg
	}
}

// UsingTokenizer specifies the Tokenizer used for word statistics.
func UsingTokenizer(tok Tokenizer) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.Tokenizer = tok
	}
}

// WithPronounCategories replaces the default pronoun categories.
func WithPronounCategories(categories []PronounCategory) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.PronounCategories = categories
	}
}

// WithOutputDir sets the directory output files are written to.
func WithOutputDir(dir string) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.OutputDir = dir
	}
}

// WithCharts can enable (the default) or disable chart rendering.
func WithCharts(include bool) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.Charts = include
	}
}

// WithCSV can enable or disable (the default) the statistics CSV.
func WithCSV(include bool) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.CSV = include
	}
}

// WithJSONValidation can enable (the default) or disable schema validation
// of the JSON export.
func WithJSONValidation(include bool) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.ValidateJSON = include
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) AnalyzerOpt {
	return func(opts *AnalyzerOpts) {
		opts.Logger = logger
	}
}

// An Analyzer runs the full pipeline: segment, score, aggregate, render.
// It holds no per-run state and may be shared between goroutines as long as
// concurrent runs use distinct base filenames.
type Analyzer struct {
	opts       AnalyzerOpts
	scorer     *Scorer
	aggregator *Aggregator
}

// NewAnalyzer creates an Analyzer with the given options.
func NewAnalyzer(opts ...AnalyzerOpt) (*Analyzer, error) {
	base := AnalyzerOpts{
		OutputDir:         "output",
		Charts:            true,
		ValidateJSON:      true,
		PronounCategories: DefaultPronounCategories(),
	}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}

	if base.Logger == nil {
		base.Logger = slog.Default()
	}
	if base.Lexicon == nil {
		base.Lexicon = DefaultLexicon()
	}
	if base.Tokenizer == nil {
		base.Tokenizer = NewIterTokenizer()
	}
	if base.Segmenter == nil {
		seg, err := NewPunktSegmenter()
		if err != nil {
			return nil, fmt.Errorf("error loading sentence segmenter: %w", err)
		}
		base.Segmenter = seg
	}

	return &Analyzer{
		opts:       base,
		scorer:     NewScorer(base.Lexicon, base.Logger),
		aggregator: NewAggregator(base.Tokenizer, base.Segmenter, base.Logger),
	}, nil
}

// Result is the outcome of one analysis run. Chart and CSV paths are empty
// when those outputs were not produced.
type Result struct {
	HTMLPath       string
	AffectGridPath string
	TrajectoryPath string
	JSONPath       string
	CSVPath        string
	Stats          AggregateStats
	Records        []SentenceRecord
}

// Empty reports whether the run produced no sentence records.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Paths returns every file the run wrote, in the order they were written.
func (r *Result) Paths() []string {
	var paths []string
	for _, p := range []string{r.HTMLPath, r.AffectGridPath, r.TrajectoryPath, r.JSONPath, r.CSVPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// OutputPath returns the path of the output with the given suffix.
func (a *Analyzer) OutputPath(base, suffix string) string {
	return filepath.Join(a.opts.OutputDir, base+suffix)
}

// Segment splits text into trimmed, non-empty sentence strings.
func (a *Analyzer) Segment(text string) []string {
	sents := a.opts.Segmenter.Segment(text)
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.Text
	}
	return out
}

// Scorer returns the analyzer's sentence scorer.
func (a *Analyzer) Scorer() *Scorer {
	return a.scorer
}

// Analyze runs the pipeline over text and writes every output under the
// output directory, named after base. Text with no sentences still gets an
// HTML report and an empty JSON array; charts are skipped. Any write failure
// is returned.
func (a *Analyzer) Analyze(text, base string) (*Result, error) {
	if base == "" {
		base = DefaultBaseName
	}
	logger := a.opts.Logger.With("run_id", uuid.NewString(), "base", base)
	start := time.Now()
	logger.Info("starting analysis", "bytes", len(text))

	if err := os.MkdirAll(a.opts.OutputDir, 0o755); err != nil {
		return nil, &ExportError{Message: "failed to create output directory", Cause: err}
	}

	sentences := a.Segment(text)
	records := a.scorer.ScoreAll(sentences)
	stats := a.aggregator.Aggregate(records, text, a.opts.PronounCategories)
	logger.Debug("scored sentences", "segmented", len(sentences), "scored", len(records))

	res := &Result{Stats: stats, Records: records}

	res.HTMLPath = a.OutputPath(base, HTMLSuffix)
	if err := RenderHTML(res.HTMLPath, base, records, stats); err != nil {
		return nil, err
	}

	if a.opts.Charts && len(records) > 0 {
		res.AffectGridPath = a.OutputPath(base, AffectGridSuffix)
		if err := RenderAffectGrid(records, res.AffectGridPath); err != nil {
			return nil, err
		}
		res.TrajectoryPath = a.OutputPath(base, TrajectorySuffix)
		if err := RenderTrajectory(records, res.TrajectoryPath); err != nil {
			return nil, err
		}
	}

	res.JSONPath = a.OutputPath(base, JSONSuffix)
	if err := ExportJSON(res.JSONPath, records, a.opts.ValidateJSON); err != nil {
		return nil, err
	}

	if a.opts.CSV {
		res.CSVPath = a.OutputPath(base, CSVSuffix)
		if err := ExportCSV(res.CSVPath, stats); err != nil {
			return nil, err
		}
	}

	if res.Empty() {
		logger.Warn("no sentences produced", "elapsed", time.Since(start))
	} else {
		logger.Info("analysis complete",
			"sentences", stats.NumSentences,
			"mean_valence", stats.MeanValence,
			"elapsed", time.Since(start))
	}
	return res, nil
}

package psytext

import (
	"bufio"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/vader_lexicon.txt
var baseLexiconData string

// Lexicon is an immutable word -> valence mapping. It is built once from a
// base dictionary with override layers applied on top, and is safe to share
// between analyzers and goroutines.
type Lexicon struct {
	words map[string]float64
}

// curatedOverrides are hand-tuned corrections for words the base dictionary
// gets wrong in reflective, low-mood writing. They always win over the base.
var curatedOverrides = map[string]float64{
	"success":        0.5,
	"better":         0.5,
	"cheat":          -3.0,
	"lie":            -3.0,
	"pretend":        -1.5,
	"stopped":        -2.5,
	"hoping":         0.5,
	"good":           0.5,
	"smiled":         0.0,
	"can't":          -2.0,
	"cannot":         -2.0,
	"fight":          -0.5,
	"pointless":      -3.0,
	"disconnected":   -2.0,
	"heavier":        -1.0,
	"disappointment": -3.0,
	"failure":        -3.0,
	"emptiness":      -3.0,
	"broken":         -3.0,
	"dead end":       -3.5,
	"nothing":        -1.0,
}

// CuratedOverrides returns a copy of the built-in override set.
func CuratedOverrides() map[string]float64 {
	return maps.Clone(curatedOverrides)
}

// NewLexicon merges base with each override layer in order. Later layers
// replace earlier values for the same word; scores are never combined.
// Keys are stored lowercased.
func NewLexicon(base map[string]float64, overrides ...map[string]float64) *Lexicon {
	words := make(map[string]float64, len(base)+len(curatedOverrides))
	for w, s := range base {
		words[strings.ToLower(w)] = s
	}
	for _, layer := range overrides {
		for w, s := range layer {
			words[strings.ToLower(w)] = s
		}
	}
	return &Lexicon{words: words}
}

// Score returns the valence for word. The lookup is exact; callers lowercase.
func (l *Lexicon) Score(word string) (float64, bool) {
	s, ok := l.words[word]
	return s, ok
}

// Has reports whether word is in the lexicon.
func (l *Lexicon) Has(word string) bool {
	_, ok := l.words[word]
	return ok
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// LexiconOpts controls how LoadLexicon builds a Lexicon.
type LexiconOpts struct {
	BasePath         string // VADER-format file replacing the bundled dictionary
	OverridesPath    string // JSON object of extra overrides applied after the curated set
	SkipCuratedLayer bool   // If true, the curated overrides are not applied
}

// A LexiconOpt represents a setting that changes lexicon loading.
type LexiconOpt func(opts *LexiconOpts)

// UsingBaseLexicon loads the base dictionary from a VADER-format file instead
// of the bundled one.
func UsingBaseLexicon(path string) LexiconOpt {
	return func(opts *LexiconOpts) {
		opts.BasePath = path
	}
}

// UsingOverrides layers a JSON override file on top of the curated set.
func UsingOverrides(path string) LexiconOpt {
	return func(opts *LexiconOpts) {
		opts.OverridesPath = path
	}
}

// WithCuratedOverrides can enable (the default) or disable the curated layer.
func WithCuratedOverrides(include bool) LexiconOpt {
	return func(opts *LexiconOpts) {
		opts.SkipCuratedLayer = !include
	}
}

// LoadLexicon builds a Lexicon according to opts.
//
// For example,
//
//	lex, err := psytext.LoadLexicon(psytext.UsingOverrides("my_words.json"))
func LoadLexicon(opts ...LexiconOpt) (*Lexicon, error) {
	var o LexiconOpts
	for _, applyOpt := range opts {
		applyOpt(&o)
	}

	var (
		base map[string]float64
		err  error
	)
	if o.BasePath != "" {
		base, err = readLexiconFile(o.BasePath)
	} else {
		base, err = ParseLexicon(strings.NewReader(baseLexiconData))
	}
	if err != nil {
		return nil, err
	}

	var layers []map[string]float64
	if !o.SkipCuratedLayer {
		layers = append(layers, curatedOverrides)
	}
	if o.OverridesPath != "" {
		extra, err := readOverridesFile(o.OverridesPath)
		if err != nil {
			return nil, err
		}
		layers = append(layers, extra)
	}

	return NewLexicon(base, layers...), nil
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := LoadLexicon()
	if err != nil {
		// The bundled data is compiled in; failing to parse it is a build defect.
		panic(err)
	}
	return lex
})

// DefaultLexicon returns the bundled dictionary with the curated overrides.
func DefaultLexicon() *Lexicon {
	return defaultLexicon()
}

// ParseLexicon reads VADER-format lines: word<TAB>mean[<TAB>...]. Blank lines
// and lines starting with '#' are ignored.
func ParseLexicon(r io.Reader) (map[string]float64, error) {
	words := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("lexicon line %d: expected word and score separated by a tab", line)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		words[strings.TrimSpace(fields[0])] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading lexicon: %w", err)
	}
	return words, nil
}

func readLexiconFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening lexicon file: %w", err)
	}
	defer f.Close()
	return ParseLexicon(f)
}

func readOverridesFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading overrides file: %w", err)
	}
	var overrides map[string]float64
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("error parsing overrides JSON: %w", err)
	}
	return overrides, nil
}

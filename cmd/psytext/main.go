// Package main implements the psytext CLI, which scores the sentiment of text
// files sentence by sentence and writes colored reports, charts and exports.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tsawler/psytext"
	"github.com/tsawler/psytext/internal/config"
	"github.com/tsawler/psytext/internal/logger"
)

var (
	configFile string

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "psytext",
	Short: "Lexicon-based sentence sentiment analysis",
	Long: "psytext splits English text into sentences, scores each sentence's valence and arousal " +
		"with a VADER-style lexicon, and writes an annotated HTML report, affect-grid and trajectory " +
		"charts, a JSON export and optional statistics CSV.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = c
	log = logger.Setup(cfg.Log)
	return nil
}

// loadLexicon builds the lexicon named by the configuration.
func loadLexicon() (*psytext.Lexicon, error) {
	var opts []psytext.LexiconOpt
	if cfg.Lexicon.BasePath != "" {
		opts = append(opts, psytext.UsingBaseLexicon(cfg.Lexicon.BasePath))
	}
	if cfg.Lexicon.OverridesPath != "" {
		opts = append(opts, psytext.UsingOverrides(cfg.Lexicon.OverridesPath))
	}
	if len(opts) == 0 {
		return psytext.DefaultLexicon(), nil
	}
	return psytext.LoadLexicon(opts...)
}

// newAnalyzer builds an Analyzer from the configuration. outDir and csv
// override the configured values when set.
func newAnalyzer(outDir string, csv bool) (*psytext.Analyzer, error) {
	lex, err := loadLexicon()
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	return psytext.NewAnalyzer(
		psytext.UsingLexicon(lex),
		psytext.WithOutputDir(outDir),
		psytext.WithCharts(cfg.Output.Charts),
		psytext.WithCSV(csv || cfg.Output.CSV),
		psytext.WithJSONValidation(cfg.Output.ValidateJSON),
		psytext.WithLogger(log),
	)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/psytext"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a text or HTML file",
	Long: "Segments the input into sentences, scores each one and writes <base>_emotions.html, " +
		"<base>_affect_grid.png, <base>_sentiment_trajectory.png and <base>_analysis.json to the output directory.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeText   string
	analyzeBase   string
	analyzeOutDir string
	analyzeCSV    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Text to analyze instead of a file")
	analyzeCmd.Flags().StringVarP(&analyzeBase, "base", "b", "", "Base filename of the outputs (default: input file name)")
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out-dir", "o", "", "Output directory (default: output.dir)")
	analyzeCmd.Flags().BoolVar(&analyzeCSV, "csv", false, "Also write <base>_statistics.csv")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeText != "" && len(args) > 0 {
		return fmt.Errorf("cannot use --text with an input file")
	}
	if analyzeText == "" && len(args) == 0 {
		return fmt.Errorf("must provide an input file or --text")
	}

	var (
		text string
		base = analyzeBase
		err  error
	)
	if analyzeText != "" {
		text, err = psytext.NormalizeText(analyzeText)
		if err != nil {
			return err
		}
	} else {
		in, err := psytext.ReadInput(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		text = in.Text
		if base == "" {
			base = baseName(args[0])
		}
	}

	analyzer, err := newAnalyzer(analyzeOutDir, analyzeCSV)
	if err != nil {
		return err
	}

	res, err := analyzer.Analyze(text, base)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)
	return nil
}

// baseName is the input file name without directory or extension.
func baseName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if strings.Trim(name, "."+string(filepath.Separator)) == "" {
		return psytext.DefaultBaseName
	}
	return name
}

func printResult(w io.Writer, res *psytext.Result) {
	for _, p := range res.Paths() {
		fmt.Fprintf(w, "wrote %s\n", p)
	}
	if res.Empty() {
		fmt.Fprintln(w, "no sentences found")
		return
	}

	s := res.Stats
	fmt.Fprintf(w, "sentences: %d (positive %d, negative %d, neutral %d)\n",
		s.NumSentences, s.PositiveCount, s.NegativeCount, s.NeutralCount)
	fmt.Fprintf(w, "mean valence: %.3f  mean arousal: %.3f\n", s.MeanValence, s.MeanArousal)
	fmt.Fprintf(w, "words: %s  type-token ratio: %s  flesch reading ease: %s\n",
		s.TotalWords, s.TypeTokenRatio, s.FleschReadingEase)
}

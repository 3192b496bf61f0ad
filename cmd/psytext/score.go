package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/psytext"
)

var scoreCmd = &cobra.Command{
	Use:   "score <sentence>",
	Short: "Score a single sentence",
	Long:  "Prints the polarity scores, valence, arousal, color bucket and polarity class of one sentence as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

type scoreOutput struct {
	Sentence string `json:"sentence"`
	psytext.PolarityScores
	Valence     float64             `json:"valence"`
	Arousal     float64             `json:"arousal"`
	ColorBucket psytext.ColorBucket `json:"colorBucket"`
	Polarity    psytext.Polarity    `json:"polarity"`
}

func runScore(cmd *cobra.Command, args []string) error {
	sentence, err := psytext.NormalizeText(strings.Join(args, " "))
	if err != nil {
		return err
	}

	lex, err := loadLexicon()
	if err != nil {
		return err
	}
	scorer := psytext.NewScorer(lex, log)

	ps, err := scorer.Polarity(sentence)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(scoreOutput{
		Sentence:       sentence,
		PolarityScores: ps,
		Valence:        ps.Compound,
		Arousal:        psytext.Arousal(ps),
		ColorBucket:    psytext.BucketFor(ps.Compound),
		Polarity:       psytext.PolarityOf(ps.Compound),
	})
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/psytext"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Analyze several files concurrently",
	Long: "Analyzes each input file with up to batch.workers analyses running at once. Every file " +
		"writes its outputs under its own base name; inputs whose base names collide are rejected.",
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchOutDir  string
	batchCSV     bool
	batchWorkers int
)

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "", "Output directory (default: output.dir)")
	batchCmd.Flags().BoolVar(&batchCSV, "csv", false, "Also write <base>_statistics.csv for each file")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent analyses (default: batch.workers)")

	rootCmd.AddCommand(batchCmd)
}

type batchOutcome struct {
	path   string
	result *psytext.Result
	err    error
}

func runBatch(cmd *cobra.Command, args []string) error {
	bases := make(map[string]string, len(args))
	for _, path := range args {
		base := baseName(path)
		if prev, ok := bases[base]; ok {
			return fmt.Errorf("%s and %s would both write outputs named %q", prev, path, base)
		}
		bases[base] = path
	}

	analyzer, err := newAnalyzer(batchOutDir, batchCSV)
	if err != nil {
		return err
	}

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	outcomes := runBatchAnalyses(analyzer, args, workers)

	var errs []error
	w := cmd.OutOrStdout()
	for _, o := range outcomes {
		if o.err != nil {
			log.Error("analysis failed", "path", o.path, "error", o.err)
			errs = append(errs, fmt.Errorf("%s: %w", o.path, o.err))
			continue
		}
		fmt.Fprintf(w, "== %s\n", o.path)
		printResult(w, o.result)
	}
	return errors.Join(errs...)
}

// runBatchAnalyses analyzes every path with at most workers running at once.
// A failing file does not stop the others; outcomes keep the order of paths.
func runBatchAnalyses(analyzer *psytext.Analyzer, paths []string, workers int) []batchOutcome {
	outcomes := make([]batchOutcome, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = analyzeFile(analyzer, path)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func analyzeFile(analyzer *psytext.Analyzer, path string) batchOutcome {
	in, err := psytext.ReadInput(path)
	if err != nil {
		return batchOutcome{path: path, err: err}
	}
	res, err := analyzer.Analyze(in.Text, baseName(path))
	return batchOutcome{path: path, result: res, err: err}
}

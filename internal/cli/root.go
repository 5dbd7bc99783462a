// Package cli wires the retrieval engine's packages into a set of cobra
// subcommands: build an index from a crawler dump, run a ranked search
// against it, spell-correct a query against the indexed vocabulary,
// surface near-duplicate documents via LSH, and score a set of retrieval
// results against ground truth.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dataDir string

// Execute builds the root command, registers every subcommand, and runs it
// against os.Args under ctx.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "cinesearch",
		Short: "cinesearch is a small-corpus text retrieval engine for a movie catalog",
		Long: `cinesearch indexes movie records (stars, genres, summaries) into
per-field inverted indexes and serves ranked search over them, with
spelling correction and near-duplicate detection built on the same corpus.

Get started:
  cinesearch index -i movies.json     Build an index from a crawler dump
  cinesearch search -q "space opera"  Run a ranked search
  cinesearch correct -q "spaceshp"    Spell-correct a query
  cinesearch dedupe                   Find near-duplicate documents
  cinesearch eval -f runs.json        Score predicted vs. actual result sets`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&dataDir, "data", "data", "directory the index is read from and written to")

	root.AddCommand(newIndexCommand())
	root.AddCommand(newSearchCommand())
	root.AddCommand(newCorrectCommand())
	root.AddCommand(newDedupeCommand())
	root.AddCommand(newEvalCommand())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

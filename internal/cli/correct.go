package cli

import (
	"fmt"
	"strings"

	"github.com/cinesearch/retrieval/internal/config"
	"github.com/cinesearch/retrieval/internal/index"
	"github.com/cinesearch/retrieval/internal/normalize"
	"github.com/cinesearch/retrieval/internal/spellcorrect"
	"github.com/spf13/cobra"
)

func newCorrectCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "spell-correct a query against the indexed vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCorrect(query)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "query text (required)")
	cmd.MarkFlagRequired("query")
	return cmd
}

func runCorrect(query string) error {
	cfg := config.Default()
	cfg.DataDir = dataDir
	store := index.NewStore(cfg.DataDir)

	documents, err := store.ReadDocuments()
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	vocabulary := make([]string, 0, len(documents)*8)
	for _, doc := range documents {
		vocabulary = append(vocabulary, doc.Summaries...)
		vocabulary = append(vocabulary, doc.Genres...)
	}

	corrector := spellcorrect.New(vocabulary, cfg.ShingleK)
	normalizer := normalize.New(cfg.StopWords, nil)
	queryTerms := normalizer.Query(query)

	corrected, err := corrector.Correct(queryTerms)
	if err != nil {
		return fmt.Errorf("correcting query: %w", err)
	}

	fmt.Printf("%s -> %s\n", strings.Join(queryTerms, " "), strings.Join(corrected, " "))
	return nil
}

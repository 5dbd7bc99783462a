package cli

import (
	"fmt"
	"strings"

	"github.com/cinesearch/retrieval/internal/config"
	"github.com/cinesearch/retrieval/internal/index"
	"github.com/cinesearch/retrieval/internal/model"
	"github.com/cinesearch/retrieval/internal/normalize"
	"github.com/cinesearch/retrieval/internal/scorer"
	"github.com/cinesearch/retrieval/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	var (
		query       string
		method      string
		safeRanking bool
		maxResults  int
		starsW      float64
		genresW     float64
		summariesW  float64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "run a ranked search against a previously built index",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights := search.Weights{
				model.FieldStars:     starsW,
				model.FieldGenres:    genresW,
				model.FieldSummaries: summariesW,
			}
			return runSearch(query, method, safeRanking, maxResults, weights)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "query text (required)")
	cmd.MarkFlagRequired("query")
	cmd.Flags().StringVarP(&method, "method", "m", "OkapiBM25", `ranking method: "OkapiBM25" or a SMART triple pair like "lnc.ltc"`)
	cmd.Flags().BoolVar(&safeRanking, "safe", true, "score every candidate instead of stopping early in lower postings tiers")
	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 10, "maximum number of results to print (-1 for every candidate)")
	cmd.Flags().Float64Var(&starsW, "weight-stars", 1.0, "weight of the stars field in the aggregated score")
	cmd.Flags().Float64Var(&genresW, "weight-genres", 1.0, "weight of the genres field in the aggregated score")
	cmd.Flags().Float64Var(&summariesW, "weight-summaries", 1.0, "weight of the summaries field in the aggregated score")
	return cmd
}

func runSearch(query, method string, safeRanking bool, maxResults int, weights search.Weights) error {
	cfg := config.Default()
	cfg.DataDir = dataDir
	store := index.NewStore(cfg.DataDir)

	postings := make(map[model.Field]index.PostingMap, len(model.AllFields))
	tiered := make(map[model.Field]index.TieredPostings, len(model.AllFields))
	lengths := make(map[model.Field]index.FieldLengthMap, len(model.AllFields))
	for _, f := range model.AllFields {
		pm, err := store.ReadPostings(f)
		if err != nil {
			return fmt.Errorf("loading %s postings: %w", f, err)
		}
		postings[f] = pm
		t, err := store.ReadTiered(f)
		if err != nil {
			return fmt.Errorf("loading %s tiered postings: %w", f, err)
		}
		tiered[f] = t
		l, err := store.ReadLengths(f)
		if err != nil {
			return fmt.Errorf("loading %s lengths: %w", f, err)
		}
		lengths[f] = l
	}
	meta, err := store.ReadMetadata()
	if err != nil {
		return fmt.Errorf("loading metadata: %w", err)
	}

	normalizer := normalize.New(cfg.StopWords, nil)
	queryTerms := normalizer.Query(query)

	params := scorer.BM25Params{K1: cfg.BM25K1, B: cfg.BM25B}
	engine := search.New(postings, tiered, lengths, meta, params)

	results, err := engine.Search(queryTerms, method, weights, safeRanking, maxResults)
	if err != nil {
		return err
	}

	fmt.Printf("query %q -> %d normalized terms: %s\n", query, len(queryTerms), strings.Join(queryTerms, " "))
	for i, r := range results {
		fmt.Printf("%3d. %-20s %.6f\n", i+1, r.DocID, r.Score)
	}
	return nil
}

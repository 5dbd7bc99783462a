package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cinesearch/retrieval/internal/config"
	"github.com/cinesearch/retrieval/internal/index"
	"github.com/cinesearch/retrieval/internal/lsh"
	"github.com/spf13/cobra"
)

func newDedupeCommand() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "find near-duplicate documents via MinHash/LSH over a built index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedupe(verify)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "check each candidate pair's Jaccard similarity against random baseline pairs")
	return cmd
}

func runDedupe(verify bool) error {
	cfg := config.Default()
	cfg.DataDir = dataDir
	store := index.NewStore(cfg.DataDir)

	documents, err := store.ReadDocuments()
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	docIDs := make([]string, 0, len(documents))
	for id := range documents {
		docIDs = append(docIDs, id)
	}
	sort.Strings(docIDs)

	shingled := make([]map[string]struct{}, len(docIDs))
	for i, id := range docIDs {
		rec := documents[id]
		text := strings.Join(rec.Summaries, " ")
		shingled[i] = lsh.ShingleDocument(text, cfg.ShingleK)
	}

	deduper := lsh.New(cfg.NumHashes, cfg.LSHBands, cfg.LSHRowsPerBand, cfg.ShingleK)
	cm := lsh.BuildCharacteristicMatrix(shingled)
	signature := deduper.MinHashSignature(cm, len(docIDs))
	buckets := deduper.LSHBuckets(signature, len(docIDs))
	pairs := lsh.CandidatePairs(buckets)

	fmt.Printf("%d candidate near-duplicate pairs across %d documents\n", len(pairs), len(docIDs))
	for _, p := range pairs {
		fmt.Printf("  %s ~ %s\n", docIDs[p.DocA], docIDs[p.DocB])
	}

	if verify && len(pairs) > 0 {
		result := deduper.VerifyCandidatePairs(pairs, shingled)
		fmt.Printf("verification: %d/%d pairs confirmed (%.2f%%)\n", result.Correct, result.Total, result.Score()*100)
	}
	return nil
}

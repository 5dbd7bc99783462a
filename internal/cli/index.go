package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/cinesearch/retrieval/internal/config"
	"github.com/cinesearch/retrieval/internal/index"
	"github.com/cinesearch/retrieval/internal/model"
	"github.com/cinesearch/retrieval/internal/normalize"
	"github.com/spf13/cobra"
)

func newIndexCommand() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "build the per-field indexes from a crawler dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(inputPath)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to a JSON array of movie records (required)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func runIndex(inputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	var records []model.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	cfg := config.Default()
	cfg.DataDir = dataDir
	// ExtraStopwordsLang is a reserved hook (see DESIGN.md); nothing populates
	// an extra stop-word list from it yet.
	normalizer := normalize.New(cfg.StopWords, nil)

	b := index.NewBuilder()
	for _, rec := range records {
		b.AddDocument(normalizeRecord(normalizer, rec))
	}

	tiered := make(map[model.Field]index.TieredPostings, len(model.AllFields))
	for _, f := range model.AllFields {
		tiered[f] = index.BuildTiered(b.Postings[f], cfg.TierThresholdHigh, cfg.TierThresholdMed)
	}
	meta := index.BuildMetadata(b)

	store := index.NewStore(cfg.DataDir)
	if err := store.WriteAll(b, tiered, meta); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	slog.Info("index built", slog.Int("documents", len(b.Documents)), slog.String("dataDir", cfg.DataDir))
	fmt.Printf("indexed %d documents into %s\n", len(b.Documents), cfg.DataDir)
	return nil
}

// normalizeRecord runs every indexed field of rec through normalizer,
// producing the Normalized shape Builder.AddDocument expects. Every other
// Record field is carried through untouched.
func normalizeRecord(normalizer *normalize.Normalizer, rec model.Record) model.Normalized {
	out := rec.Clone()
	out.Stars = normalizer.Stars(rec.Stars)
	out.Genres = normalizer.Field(rec.Genres)
	out.Summaries = normalizer.Field(rec.Summaries)
	return model.Normalized{Record: out}
}

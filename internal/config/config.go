// Package config holds the single explicit configuration object that is
// threaded through every other package in this module. Nothing here reaches
// for a global; callers build a Config and pass it to the constructors that
// need it.
package config

// Config collects every tunable named across the retrieval engine: where the
// indexes live on disk, the MinHash/LSH parameters, the BM25 parameters, the
// tiered-index thresholds, and the stop-word list applied during
// normalization.
type Config struct {
	// DataDir is the directory IndexStore reads from and writes to.
	DataDir string

	// NumHashes is the number of MinHash permutations used to build a
	// document's signature.
	NumHashes int
	// ShingleK is the shingle length used by both the spell corrector
	// (character shingles) and the LSH deduper (word shingles).
	ShingleK int
	// LSHBands and LSHRowsPerBand partition the signature matrix; their
	// product must equal NumHashes.
	LSHBands       int
	LSHRowsPerBand int

	// BM25K1 and BM25B are the Okapi BM25 tuning parameters.
	BM25K1 float64
	BM25B  float64

	// TierThresholdHigh and TierThresholdMed split a PostingMap into three
	// tiers by term frequency: tf >= High is tier 1, Med <= tf < High is
	// tier 2, and 1 <= tf < Med is tier 3.
	TierThresholdHigh int
	TierThresholdMed  int

	// StopWords is the fixed, closed set of stop words removed from
	// normalized summaries/genres tokens. Matched case-insensitively as
	// whole words against the lowercased text, after tokenization, stemming
	// and lemmatization.
	StopWords []string

	// ExtraStopwordsLang names a language for a broader stop-word pass. No
	// code in this module reads it: normalization applies StopWords only,
	// and the 10-word list is always applied.
	ExtraStopwordsLang string
}

// Default returns the engine's baseline configuration: 200 hashes, 2-word
// shingles, 50 bands of 4 rows, BM25 k1=1.5/b=0.75, tier thresholds 10/3, and
// the fixed 10-word stop list.
func Default() Config {
	return Config{
		DataDir:           "data",
		NumHashes:         200,
		ShingleK:          2,
		LSHBands:          50,
		LSHRowsPerBand:    4,
		BM25K1:            1.5,
		BM25B:             0.75,
		TierThresholdHigh: 10,
		TierThresholdMed:  3,
		StopWords: []string{
			"this", "that", "about", "whom", "being",
			"where", "why", "had", "should", "each",
		},
	}
}

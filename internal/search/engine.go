// Package search is the query orchestrator: it fans a normalized query out
// across weighted fields, scores each field with either the vector-space or
// BM25 scorer, and aggregates per-field scores into one ranked result list.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/cinesearch/retrieval/internal/index"
	"github.com/cinesearch/retrieval/internal/model"
	"github.com/cinesearch/retrieval/internal/scorer"
)

// ErrNotImplemented is returned by Search when asked for a ranking method
// this engine never implements — currently just "unigram", whose language-
// model smoothing (bayes/naive/mixture) has no scorer here.
var ErrNotImplemented = errors.New("search: method not implemented")

// ErrUnknownMethod is returned by Search when method is neither a parseable
// SMART triple pair, "OkapiBM25", nor "unigram" — an invalid configuration
// value, fatal at the API boundary rather than silently scoring to nothing.
var ErrUnknownMethod = errors.New("search: unknown method")

// Weights maps a field to its contribution in the final aggregated score.
// A field absent from Weights is not searched at all.
type Weights map[model.Field]float64

// Result is one ranked document: its ID and its aggregated score across
// every weighted field.
type Result struct {
	DocID string
	Score float64
}

// Engine holds everything a query needs to run against one built corpus:
// the full and tiered postings per field, field lengths, and corpus
// metadata. It has no mutable state — Search is safe to call concurrently.
type Engine struct {
	Postings   map[model.Field]index.PostingMap
	Tiered     map[model.Field]index.TieredPostings
	Lengths    map[model.Field]index.FieldLengthMap
	Metadata   index.Metadata
	BM25Params scorer.BM25Params
}

// New builds an Engine from a freshly built or freshly loaded corpus.
func New(postings map[model.Field]index.PostingMap, tiered map[model.Field]index.TieredPostings, lengths map[model.Field]index.FieldLengthMap, meta index.Metadata, params scorer.BM25Params) *Engine {
	return &Engine{Postings: postings, Tiered: tiered, Lengths: lengths, Metadata: meta, BM25Params: params}
}

// Search runs a normalized query against the given fields and weights and
// returns the top maxResults documents, highest score first. method is
// either an "xyz.xyz" SMART pair, "OkapiBM25", or "unigram" (always an
// error — see ErrNotImplemented); anything else is an invalid configuration
// value and fails with ErrUnknownMethod rather than silently scoring to an
// empty result set. safeRanking selects full-postings scoring over every
// candidate; the tiered (unsafe) path stops early once a field has
// accumulated maxResults candidates. maxResults of -1 means "every document
// in the corpus".
func (e *Engine) Search(queryTerms []string, method string, weights Weights, safeRanking bool, maxResults int) ([]Result, error) {
	if maxResults == -1 {
		maxResults = e.Metadata.DocumentCount
	}

	if isUnigram(method) {
		return nil, fmt.Errorf("%w: unigram smoothing", ErrNotImplemented)
	}
	if _, _, ok := scorer.SMARTMethod(method); !ok && method != "OkapiBM25" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}

	var perField map[model.Field]map[string]float64
	if safeRanking {
		perField = e.scoreSafe(queryTerms, method, weights)
	} else {
		perField = e.scoreTiered(queryTerms, method, weights, maxResults)
	}

	final := aggregate(weights, perField)

	results := make([]Result, 0, len(final))
	for docID, score := range final {
		results = append(results, Result{DocID: docID, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	slog.Info("search complete",
		slog.Int("candidates", len(results)),
		slog.String("method", method),
		slog.Int("candidateBitmapCardinality", e.candidateBitmapCardinality(queryTerms, weights)),
	)

	if maxResults >= 0 && maxResults < len(results) {
		results = results[:maxResults]
	}
	return results, nil
}

func isUnigram(method string) bool {
	return method == "unigram" || method == "Unigram"
}

// scoreSafe scores every candidate document in each weighted field's full
// postings — no early termination, no approximation.
func (e *Engine) scoreSafe(queryTerms []string, method string, weights Weights) map[model.Field]map[string]float64 {
	scores := make(map[model.Field]map[string]float64, len(weights))
	for field := range weights {
		scores[field] = e.scoreField(e.Postings[field], queryTerms, method, field)
	}
	return scores
}

// scoreTiered walks each field's tiers in order (highest term-frequency
// tier first), merging scores as it goes, and stops consulting further
// tiers for a field once that field alone has reached maxResults
// candidates. This trades completeness for speed: a document sitting only
// in a lower tier can be missed if an earlier tier already filled the quota.
func (e *Engine) scoreTiered(queryTerms []string, method string, weights Weights, maxResults int) map[model.Field]map[string]float64 {
	scores := make(map[model.Field]map[string]float64, len(weights))
	for field := range weights {
		merged := make(map[string]float64)
		tiered := e.Tiered[field]
		for _, tier := range tiered.Tiers() {
			tierScores := e.scoreField(tier, queryTerms, method, field)
			merged = mergeScores(merged, tierScores)
			if len(merged) >= maxResults {
				break
			}
		}
		scores[field] = merged
	}
	return scores
}

func (e *Engine) scoreField(postings index.PostingMap, queryTerms []string, method string, field model.Field) map[string]float64 {
	idf := scorer.NewIDFCache(postings, e.Metadata.DocumentCount)
	if method == "OkapiBM25" {
		avgLen := e.Metadata.AverageDocumentLength[field]
		return scorer.BM25Scores(postings, queryTerms, e.Lengths[field], avgLen, e.BM25Params, idf)
	}
	scores, ok := scorer.VectorSpaceScores(postings, queryTerms, method, idf)
	if !ok {
		return map[string]float64{}
	}
	return scores
}

// mergeScores sums two score maps by docID; a docID in only one map keeps
// its original score.
func mergeScores(a, b map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] += v
	}
	return merged
}

// candidateBitmapCardinality unions every weighted field's candidate set as
// a roaring bitmap over interned document handles and returns its size. This
// is purely an observability figure logged alongside a search's scored
// candidate count; the scoring path itself still walks PostingMap directly.
func (e *Engine) candidateBitmapCardinality(queryTerms []string, weights Weights) int {
	table := index.NewDocIDTable()
	union := roaring.NewBitmap()
	for field := range weights {
		union.Or(e.Postings[field].CandidateBitmap(queryTerms, table))
	}
	return int(union.GetCardinality())
}

// aggregate computes the weighted sum of per-field scores into one
// score per document. A document absent from a field's score map
// contributes 0 for that field, not an error.
func aggregate(weights Weights, perField map[model.Field]map[string]float64) map[string]float64 {
	final := make(map[string]float64)
	for field, weight := range weights {
		for docID, score := range perField[field] {
			final[docID] += score * weight
		}
	}
	return final
}

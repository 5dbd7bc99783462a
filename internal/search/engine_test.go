package search

import (
	"errors"
	"testing"

	"github.com/cinesearch/retrieval/internal/index"
	"github.com/cinesearch/retrieval/internal/model"
	"github.com/cinesearch/retrieval/internal/scorer"
)

func newTestEngine() *Engine {
	summaries := index.NewPostingMap()
	summaries.Add("spider", "d1", 2)
	summaries.Add("man", "d1", 1)
	summaries.Add("spider", "d2", 1)

	stars := index.NewPostingMap()
	stars.Add("tom", "d1", 1)
	stars.Add("holland", "d1", 1)
	stars.Add("tom", "d2", 1)

	postings := map[model.Field]index.PostingMap{
		model.FieldSummaries: summaries,
		model.FieldStars:     stars,
		model.FieldGenres:    index.NewPostingMap(),
	}
	lengths := map[model.Field]index.FieldLengthMap{
		model.FieldSummaries: {"d1": 10, "d2": 5},
		model.FieldStars:     {"d1": 2, "d2": 1},
		model.FieldGenres:    {},
	}
	meta := index.Metadata{
		DocumentCount: 2,
		AverageDocumentLength: map[model.Field]float64{
			model.FieldSummaries: 7.5,
			model.FieldStars:     1.5,
			model.FieldGenres:    0,
		},
	}
	tiered := map[model.Field]index.TieredPostings{
		model.FieldSummaries: index.BuildTiered(summaries, 10, 3),
		model.FieldStars:     index.BuildTiered(stars, 10, 3),
		model.FieldGenres:    index.BuildTiered(index.NewPostingMap(), 10, 3),
	}
	return New(postings, tiered, lengths, meta, scorer.DefaultBM25Params())
}

func TestSearch_RanksByWeightedScore(t *testing.T) {
	e := newTestEngine()
	weights := Weights{model.FieldSummaries: 1, model.FieldStars: 1}
	results, err := e.Search([]string{"spider", "man", "tom", "holland"}, "lnc.ltc", weights, true, 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].DocID != "d1" {
		t.Fatalf("expected d1 to rank first, got %s", results[0].DocID)
	}
}

func TestSearch_MaxResultsLimitsOutput(t *testing.T) {
	e := newTestEngine()
	weights := Weights{model.FieldSummaries: 1}
	results, err := e.Search([]string{"spider"}, "lnc.ltc", weights, true, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestSearch_MaxResultsNegativeOneReturnsAll(t *testing.T) {
	e := newTestEngine()
	weights := Weights{model.FieldSummaries: 1}
	results, err := e.Search([]string{"spider"}, "lnc.ltc", weights, true, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both documents, got %d", len(results))
	}
}

func TestSearch_UnigramIsNotImplemented(t *testing.T) {
	e := newTestEngine()
	_, err := e.Search([]string{"spider"}, "unigram", Weights{model.FieldSummaries: 1}, true, 10)
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestSearch_UnknownMethodIsRejected(t *testing.T) {
	e := newTestEngine()
	_, err := e.Search([]string{"spider"}, "bogus", Weights{model.FieldSummaries: 1}, true, 10)
	if !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestSearch_BM25Method(t *testing.T) {
	e := newTestEngine()
	weights := Weights{model.FieldSummaries: 1}
	results, err := e.Search([]string{"spider"}, "OkapiBM25", weights, true, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected results from BM25 scoring")
	}
}

func TestSearch_SafeAndTieredAgreeOnSmallCorpus(t *testing.T) {
	e := newTestEngine()
	weights := Weights{model.FieldSummaries: 1, model.FieldStars: 1}
	safe, err := e.Search([]string{"spider", "tom"}, "lnc.ltc", weights, true, 10)
	if err != nil {
		t.Fatal(err)
	}
	tiered, err := e.Search([]string{"spider", "tom"}, "lnc.ltc", weights, false, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(safe) != len(tiered) {
		t.Fatalf("expected same candidate count on a corpus too small to trigger early termination: safe=%d tiered=%d", len(safe), len(tiered))
	}
}

func TestMergeScores_SumsOverlappingKeys(t *testing.T) {
	a := map[string]float64{"d1": 1.0, "d2": 2.0}
	b := map[string]float64{"d2": 0.5, "d3": 3.0}
	merged := mergeScores(a, b)
	if merged["d1"] != 1.0 || merged["d2"] != 2.5 || merged["d3"] != 3.0 {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
}

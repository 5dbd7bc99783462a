package index

import (
	"testing"

	"github.com/cinesearch/retrieval/internal/model"
)

func sampleRecord(id string) model.Normalized {
	return model.Normalized{Record: model.Record{
		ID:        id,
		Stars:     []string{"tom holland", "zendaya"},
		Genres:    []string{"action adventure", "sci fi"},
		Summaries: []string{"spider man save citi", "hero fight villain"},
	}}
}

func TestAddDocument_PopulatesPostingsAndLengths(t *testing.T) {
	b := NewBuilder()
	b.AddDocument(sampleRecord("m1"))

	if got := b.Postings[model.FieldStars].TermFrequency("tom", "m1"); got != 1 {
		t.Fatalf("expected tf(tom, m1) == 1, got %d", got)
	}
	if got := b.Lengths[model.FieldStars]["m1"]; got != 3 {
		t.Fatalf("expected stars length 3 (tom, holland, zendaya), got %d", got)
	}
	if _, ok := b.Documents["m1"]; !ok {
		t.Fatal("expected m1 present in Documents")
	}
}

func TestAddDocument_IsIdempotentPerDocID(t *testing.T) {
	b := NewBuilder()
	b.AddDocument(sampleRecord("m1"))
	before := b.Postings[model.FieldStars].TermFrequency("tom", "m1")

	mutated := sampleRecord("m1")
	mutated.Stars = []string{"someone else entirely"}
	b.AddDocument(mutated)

	after := b.Postings[model.FieldStars].TermFrequency("tom", "m1")
	if before != after {
		t.Fatalf("expected re-adding m1 to be a no-op: before=%d after=%d", before, after)
	}
	if b.Postings[model.FieldStars].TermFrequency("someone", "m1") != 0 {
		t.Fatal("expected mutated values from the duplicate add to never be ingested")
	}
}

func TestRemoveDocument_ClearsEveryTrace(t *testing.T) {
	b := NewBuilder()
	b.AddDocument(sampleRecord("m1"))
	b.RemoveDocument("m1")

	if _, ok := b.Documents["m1"]; ok {
		t.Fatal("expected m1 removed from Documents")
	}
	if b.Postings[model.FieldStars].TermFrequency("tom", "m1") != 0 {
		t.Fatal("expected m1's postings removed")
	}
	if _, ok := b.Lengths[model.FieldStars]["m1"]; ok {
		t.Fatal("expected m1's length entry removed")
	}
}

func TestRemoveDocument_UnknownDocIDIsNoop(t *testing.T) {
	b := NewBuilder()
	b.AddDocument(sampleRecord("m1"))
	b.RemoveDocument("does-not-exist")

	if _, ok := b.Documents["m1"]; !ok {
		t.Fatal("expected m1 untouched by removing an unknown docID")
	}
}

func TestPostingMap_CandidateDocIDsUnion(t *testing.T) {
	pm := NewPostingMap()
	pm.Add("tom", "m1", 1)
	pm.Add("zendaya", "m2", 1)
	candidates := pm.CandidateDocIDs([]string{"tom", "zendaya", "nonexistent"})
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %v", candidates)
	}
}

func TestPostingMap_RemoveKeepsTermKey(t *testing.T) {
	pm := NewPostingMap()
	pm.Add("tom", "m1", 1)
	pm.Remove("tom", "m1")
	if _, ok := pm["tom"]; !ok {
		t.Fatal("expected term key retained even with an empty document map")
	}
	if pm.DocumentFrequency("tom") != 0 {
		t.Fatalf("expected df(tom) == 0 after removal, got %d", pm.DocumentFrequency("tom"))
	}
}

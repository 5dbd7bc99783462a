package index

import (
	"strings"

	"github.com/cinesearch/retrieval/internal/model"
)

// FieldLengthMap maps docID -> number of normalized tokens in that field for
// that document.
type FieldLengthMap map[string]int

// Builder ingests normalized records and produces, for each configured
// field: a PostingMap, a FieldLengthMap, and the shared documents
// pseudo-index.
type Builder struct {
	Postings  map[model.Field]PostingMap
	Lengths   map[model.Field]FieldLengthMap
	Documents map[string]model.Normalized
}

// NewBuilder returns a Builder with empty indexes for every field in
// model.AllFields.
func NewBuilder() *Builder {
	b := &Builder{
		Postings:  make(map[model.Field]PostingMap),
		Lengths:   make(map[model.Field]FieldLengthMap),
		Documents: make(map[string]model.Normalized),
	}
	for _, f := range model.AllFields {
		b.Postings[f] = NewPostingMap()
		b.Lengths[f] = make(FieldLengthMap)
	}
	return b
}

// fieldValues returns the normalized record's per-value strings for f.
func fieldValues(rec model.Normalized, f model.Field) []string {
	switch f {
	case model.FieldStars:
		return rec.Stars
	case model.FieldGenres:
		return rec.Genres
	case model.FieldSummaries:
		return rec.Summaries
	default:
		return nil
	}
}

// AddDocument ingests one normalized record. It is idempotent per docID: if
// docID is already present in Documents, the call is a no-op — re-adding a
// duplicate docID leaves every posting, length, and document entry
// unchanged.
func (b *Builder) AddDocument(rec model.Normalized) {
	if _, exists := b.Documents[rec.ID]; exists {
		return
	}
	b.Documents[rec.ID] = rec

	for _, f := range model.AllFields {
		postings := b.Postings[f]
		termFreq := make(map[string]int)
		total := 0
		for _, value := range fieldValues(rec, f) {
			for _, term := range strings.Fields(value) {
				termFreq[term]++
				total++
			}
		}
		for term, count := range termFreq {
			postings.Add(term, rec.ID, count)
		}
		b.Lengths[f][rec.ID] = total
	}
}

// RemoveDocument deletes docID from the documents index and from every
// posting list of every field. An unknown docID is silently ignored.
func (b *Builder) RemoveDocument(docID string) {
	rec, exists := b.Documents[docID]
	if !exists {
		return
	}
	delete(b.Documents, docID)

	for _, f := range model.AllFields {
		postings := b.Postings[f]
		seen := make(map[string]struct{})
		for _, value := range fieldValues(rec, f) {
			for _, term := range strings.Fields(value) {
				if _, ok := seen[term]; ok {
					continue
				}
				seen[term] = struct{}{}
				postings.Remove(term, docID)
			}
		}
		delete(b.Lengths[f], docID)
	}
}

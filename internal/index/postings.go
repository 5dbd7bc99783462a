// Package index implements the inverted-index family: per-field posting
// maps, document-length maps, the documents pseudo-index, tiered postings
// for early-termination queries, and corpus-wide metadata, plus the on-disk
// JSON layout they persist to.
package index

import "github.com/RoaringBitmap/roaring"

// PostingMap maps term -> docID -> term frequency for one field. A tf of 0
// never appears as an entry; an absent (term, docID) pair means tf is 0.
type PostingMap map[string]map[string]int

// NewPostingMap returns an empty PostingMap.
func NewPostingMap() PostingMap {
	return make(PostingMap)
}

// Add adds count occurrences of term in docID; a count of 0 or less is
// ignored. Add itself always increments: Builder.AddDocument keeps re-adds
// idempotent by skipping any docID it has already ingested.
func (pm PostingMap) Add(term, docID string, count int) {
	if count <= 0 {
		return
	}
	postings, ok := pm[term]
	if !ok {
		postings = make(map[string]int)
		pm[term] = postings
	}
	postings[docID] += count
}

// Has reports whether docID already has a recorded tf for term.
// Builder.AddDocument does not call it; its guard is the Documents map.
func (pm PostingMap) Has(term, docID string) bool {
	postings, ok := pm[term]
	if !ok {
		return false
	}
	_, ok = postings[docID]
	return ok
}

// Remove deletes docID's tf entry for term, if any. The term key itself is
// never deleted, even once its document map is empty.
func (pm PostingMap) Remove(term, docID string) {
	if postings, ok := pm[term]; ok {
		delete(postings, docID)
	}
}

// TermFrequency returns tf for (term, docID), or 0 if absent.
func (pm PostingMap) TermFrequency(term, docID string) int {
	return pm[term][docID]
}

// DocumentFrequency returns the number of documents term appears in.
func (pm PostingMap) DocumentFrequency(term string) int {
	return len(pm[term])
}

// CandidateDocIDs returns the union of posting-list docIDs over every term
// present in the index.
func (pm PostingMap) CandidateDocIDs(terms []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, term := range terms {
		for docID := range pm[term] {
			if _, ok := seen[docID]; !ok {
				seen[docID] = struct{}{}
				out = append(out, docID)
			}
		}
	}
	return out
}

// CandidateBitmap is the same union as CandidateDocIDs, represented as a
// roaring bitmap of interned document handles. SearchEngine unions these
// bitmaps across weighted fields' full postings only to log the candidate
// count; scoring reads the PostingMap directly.
func (pm PostingMap) CandidateBitmap(terms []string, table *DocIDTable) *roaring.Bitmap {
	bm := roaring.NewBitmap()
	for _, term := range terms {
		for docID := range pm[term] {
			bm.Add(table.Intern(docID))
		}
	}
	return bm
}

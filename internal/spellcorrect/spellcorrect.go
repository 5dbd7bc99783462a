// Package spellcorrect finds spelling-corrected forms for query terms that
// are absent from the indexed vocabulary, using character-shingle Jaccard
// similarity reranked by corpus term frequency.
package spellcorrect

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when a Corrector is asked to find
// candidates before it has ever seen a document.
var ErrEmptyVocabulary = errors.New("spellcorrect: vocabulary is empty")

// Corrector shingles and frequency-counts a fixed vocabulary up front so
// that FindNearestWords and Correct only pay for comparing a misspelled
// term against each known word, not for rebuilding the vocabulary.
type Corrector struct {
	k         int
	shingles  map[string]map[string]struct{}
	termCount map[string]int
}

// New builds a Corrector over the word vocabulary implied by documents: each
// document is lowercased and split on whitespace, and every distinct word is
// shingled into overlapping k-character substrings. k must be at least 1;
// New(documents, 2) matches the two-character shingles used elsewhere in
// this module.
func New(documents []string, k int) *Corrector {
	c := &Corrector{
		k:         k,
		shingles:  make(map[string]map[string]struct{}),
		termCount: make(map[string]int),
	}
	for _, doc := range documents {
		for _, term := range strings.Fields(strings.ToLower(doc)) {
			if _, seen := c.termCount[term]; !seen {
				c.shingles[term] = shingleWord(term, k)
			}
			c.termCount[term]++
		}
	}
	return c
}

// Has reports whether term is already in the vocabulary, i.e. whether a
// query containing it needs no correction.
func (c *Corrector) Has(term string) bool {
	_, ok := c.termCount[term]
	return ok
}

// shingleWord splits word into its set of k-character substrings. A word
// shorter than k yields the single-element set containing the whole word,
// matching the corpus reference behavior for short tokens.
func shingleWord(word string, k int) map[string]struct{} {
	shingles := make(map[string]struct{})
	runes := []rune(word)
	if len(runes) < k {
		shingles[word] = struct{}{}
		return shingles
	}
	for i := 0; i+k <= len(runes); i++ {
		shingles[string(runes[i:i+k])] = struct{}{}
	}
	return shingles
}

// jaccard computes |A∩B| / |A∪B|. An empty first or second set scores 0
// rather than dividing by zero — a deliberate asymmetry from the textbook
// definition (which leaves the empty/empty case undefined), carried over
// because it is the behavior this module has always shipped.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for s := range a {
		if _, ok := b[s]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

type candidate struct {
	term    string
	jaccard float64
}

// FindNearestWords returns up to 5 vocabulary words ranked as corrections
// for word: first narrowed to the 5 highest Jaccard-similarity terms by
// shingle overlap, then reranked by jaccard score weighted by the term's
// normalized corpus frequency (count/maxCount among those 5), so a common
// word among equally-close candidates wins.
func (c *Corrector) FindNearestWords(word string) ([]string, error) {
	if len(c.termCount) == 0 {
		return nil, ErrEmptyVocabulary
	}

	wordShingles := shingleWord(word, c.k)
	all := make([]candidate, 0, len(c.shingles))
	for term, termShingles := range c.shingles {
		all = append(all, candidate{term: term, jaccard: jaccard(wordShingles, termShingles)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].jaccard != all[j].jaccard {
			return all[i].jaccard > all[j].jaccard
		}
		return all[i].term < all[j].term
	})

	top := all
	if len(top) > 5 {
		top = top[:5]
	}

	maxCount := 0
	for _, cand := range top {
		if n := c.termCount[cand.term]; n > maxCount {
			maxCount = n
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		scoreI := top[i].jaccard * (float64(c.termCount[top[i].term]) / float64(maxCount))
		scoreJ := top[j].jaccard * (float64(c.termCount[top[j].term]) / float64(maxCount))
		return scoreI > scoreJ
	})

	out := make([]string, len(top))
	for i, cand := range top {
		out[i] = cand.term
	}
	return out, nil
}

// Correct replaces every query term absent from the vocabulary with its
// best FindNearestWords candidate, leaving known terms untouched.
func (c *Corrector) Correct(queryTerms []string) ([]string, error) {
	fixed := make([]string, len(queryTerms))
	for i, term := range queryTerms {
		if c.Has(term) {
			fixed[i] = term
			continue
		}
		candidates, err := c.FindNearestWords(term)
		if err != nil {
			return nil, err
		}
		fixed[i] = candidates[0]
	}
	return fixed, nil
}

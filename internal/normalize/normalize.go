// Package normalize implements the deterministic text pipeline applied
// identically to documents at index time and to queries at search time:
// strip HTML/URLs, collapse noise to spaces, lowercase, tokenize, Porter-stem,
// lemmatize, and drop a fixed stop-word list.
//
// Normalize is pure and idempotent: calling it twice on its own output
// returns the same result.
package normalize

import (
	"strings"

	snowballeng "github.com/kljensen/snowball/english"
)

// Normalizer runs the text pipeline with a configured stop-word list. The
// zero value is not usable; construct with New.
type Normalizer struct {
	stopwords []string
	extra     *stopwordPattern
}

// New builds a Normalizer over the given stop-word list. extraStopwords, if
// non-nil, is an additional set of words removed after the fixed list; it is
// applied as a second, independent pass so the fixed 10-word list's behavior
// never changes regardless of what extra words are supplied.
func New(stopwords []string, extraStopwords []string) *Normalizer {
	n := &Normalizer{stopwords: stopwords}
	if len(extraStopwords) > 0 {
		n.extra = compileStopwords(extraStopwords)
	}
	return n
}

// Tokens runs the full eight-step pipeline over a single string and returns
// the final token sequence. Query uses it directly, and Field adapts its
// output to the per-value string shape IndexBuilder expects; Stars does not
// use it.
func (n *Normalizer) Tokens(text string) []string {
	text = stripLinks(text)
	text = stripNoise(text)
	text = strings.ToLower(text)

	tokens := tokenize(text)
	for i, t := range tokens {
		tokens[i] = lemmatize(snowballeng.Stem(t, false))
	}

	joined := strings.Join(tokens, " ")
	joined = removeStopwords(joined, n.stopwords)
	if n.extra != nil && n.extra.re != nil {
		joined = n.extra.re.ReplaceAllString(joined, "")
	}

	return strings.Fields(joined)
}

// Query normalizes a raw query string as if it were a single summaries-field
// value, returning the term list used to drive search.
func (n *Normalizer) Query(text string) []string {
	return n.Tokens(text)
}

// Field normalizes a multi-valued genres/summaries field: each raw value is
// run through the full pipeline and rejoined into a single normalized
// string, preserving the one-string-per-value shape IndexBuilder splits on
// whitespace to recover per-value token counts.
func (n *Normalizer) Field(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.Join(n.Tokens(v), " ")
	}
	return out
}

// Stars normalizes the stars field: lowercase only, no stemming, no
// lemmatization, no stop-word removal. This asymmetry is load-bearing: a cast
// name is a proper noun, and IndexBuilder tokenizes stars by a later
// whitespace split over this unstemmed, unfiltered text.
func (n *Normalizer) Stars(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

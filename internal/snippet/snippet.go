// Package snippet extracts a query-centered excerpt from a matched
// document: the query's stemmed terms are located in the document, the
// best-covered neighborhoods are expanded into windows, and each matching
// term is wrapped in "***" for display.
package snippet

import (
	"sort"
	"strings"

	snowballeng "github.com/kljensen/snowball/english"
)

// Builder extracts snippets with a fixed radius of context words on each
// side of a matched term.
type Builder struct {
	Radius int
}

// NewBuilder returns a Builder that shows radius words of context on each
// side of a match.
func NewBuilder(radius int) *Builder {
	return &Builder{Radius: radius}
}

// occurrence pairs a document token position with the query token position
// it matches (after stemming).
type occurrence struct {
	docPos, queryPos int
}

// Snippet finds the best excerpt of doc for query. doc is expected to
// already be lowercased with redundant punctuation stripped but NOT
// stemmed or lemmatized — Snippet stems its own working copy so the
// returned text still reads naturally. It returns the joined snippet text,
// with every matched term wrapped in "***", and the list of original query
// words that never occur (in any stemmed form) anywhere in doc.
func (b *Builder) Snippet(doc, query string) (string, []string) {
	docTokens := strings.Fields(doc)
	queryTokens := strings.Fields(query)

	docStemmed := stemAll(docTokens)
	queryStemmed := stemAll(queryTokens)

	occs, matchedQueryIdx := findOccurrences(docStemmed, queryStemmed)
	notExist := missingQueryWords(queryTokens, matchedQueryIdx)

	bestDocPos := bestPositionPerQueryWord(occs, docStemmed, queryStemmed, b.Radius)
	windows := buildWindows(bestDocPos, docStemmed, queryStemmed, b.Radius)

	return renderWindows(windows, docTokens, docStemmed, queryStemmed), notExist
}

func stemAll(tokens []string) []string {
	stemmed := make([]string, len(tokens))
	for i, t := range tokens {
		stemmed[i] = snowballeng.Stem(t, false)
	}
	return stemmed
}

func contains(haystack []string, needle string) (int, bool) {
	for i, h := range haystack {
		if h == needle {
			return i, true
		}
	}
	return -1, false
}

// findOccurrences returns every (docPos, queryPos) pair where the document
// token at docPos stem-matches the query token at queryPos, plus the set of
// query positions that matched at least once.
func findOccurrences(docStemmed, queryStemmed []string) ([]occurrence, map[int]struct{}) {
	var occs []occurrence
	matched := make(map[int]struct{})
	for docPos, token := range docStemmed {
		if queryPos, ok := contains(queryStemmed, token); ok {
			occs = append(occs, occurrence{docPos: docPos, queryPos: queryPos})
			matched[queryPos] = struct{}{}
		}
	}
	return occs, matched
}

func missingQueryWords(queryTokens []string, matched map[int]struct{}) []string {
	var missing []string
	for i, t := range queryTokens {
		if _, ok := matched[i]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// bestPositionPerQueryWord picks, for each query term, the document
// occurrence with the most other query terms within radius words on either
// side — the densest neighborhood for that term.
func bestPositionPerQueryWord(occs []occurrence, docStemmed, queryStemmed []string, radius int) map[int]int {
	candidateCounts := make(map[int]map[int]int) // queryPos -> docPos -> nearby count
	for _, o := range occs {
		if candidateCounts[o.queryPos] == nil {
			candidateCounts[o.queryPos] = make(map[int]int)
		}
		candidateCounts[o.queryPos][o.docPos] = nearbyQueryTermCount(docStemmed, queryStemmed, o.docPos, radius)
	}

	best := make(map[int]int)
	for queryPos, byDocPos := range candidateCounts {
		bestDocPos, bestCount := -1, -1
		for docPos, count := range byDocPos {
			if count > bestCount || (count == bestCount && docPos < bestDocPos) {
				bestDocPos, bestCount = docPos, count
			}
		}
		best[queryPos] = bestDocPos
	}
	return best
}

func nearbyQueryTermCount(docStemmed, queryStemmed []string, pos, radius int) int {
	count := 0
	for i := pos - 1; i >= 0 && i >= pos-radius; i-- {
		if _, ok := contains(queryStemmed, docStemmed[i]); ok {
			count++
		}
	}
	for i := pos + 1; i < len(docStemmed) && i <= pos+radius; i++ {
		if _, ok := contains(queryStemmed, docStemmed[i]); ok {
			count++
		}
	}
	return count
}

type window struct {
	matchCount int
	positions  []int
}

// buildWindows greedily expands each unvisited query term's best document
// position into a window of radius context words, extending the window's
// right bound whenever a further query term is swept up, then returns the
// windows ordered by sortWindows (match count ascending, position as
// tiebreak).
func buildWindows(bestDocPos map[int]int, docStemmed, queryStemmed []string, radius int) []window {
	visited := make(map[int]struct{})
	var windows []window

	orderedQueryPositions := make([]int, 0, len(bestDocPos))
	for qp := range bestDocPos {
		orderedQueryPositions = append(orderedQueryPositions, qp)
	}
	sortInts(orderedQueryPositions)

	for _, queryPos := range orderedQueryPositions {
		if _, done := visited[queryPos]; done {
			continue
		}
		visited[queryPos] = struct{}{}

		pos := bestDocPos[queryPos]
		positions := []int{pos}
		for j := pos - 1; j >= 0 && j >= pos-radius; j-- {
			positions = append(positions, j)
		}

		matchCount := 1
		bound := pos + 1 + radius
		for j := pos + 1; j < bound && j < len(docStemmed); j++ {
			positions = append(positions, j)
			if qp, ok := contains(queryStemmed, docStemmed[j]); ok {
				if _, already := visited[qp]; !already {
					visited[qp] = struct{}{}
					bound = j + 1 + radius
					matchCount++
				}
			}
		}

		sortInts(positions)
		windows = append(windows, window{matchCount: matchCount, positions: positions})
	}

	sortWindows(windows)
	return windows
}

func renderWindows(windows []window, docTokens, docStemmed, queryStemmed []string) string {
	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		var b strings.Builder
		for i, pos := range w.positions {
			if i > 0 {
				b.WriteByte(' ')
			}
			if _, ok := contains(queryStemmed, docStemmed[pos]); ok {
				b.WriteString("***")
				b.WriteString(docTokens[pos])
				b.WriteString("***")
			} else {
				b.WriteString(docTokens[pos])
			}
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "...")
}

func sortInts(xs []int) {
	sort.Ints(xs)
}

// sortWindows orders windows the way original_source/Logic/core/utility/
// snippet.py's `windows = sorted(windows)` does over its (cnt,
// around_indexes) tuples: primarily by matchCount ascending, then by the
// window's position list, lexicographically ascending, as a tiebreak.
func sortWindows(ws []window) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].matchCount != ws[j].matchCount {
			return ws[i].matchCount < ws[j].matchCount
		}
		return lessPositions(ws[i].positions, ws[j].positions)
	})
}

// lessPositions compares two position lists the way Python compares lists:
// element-wise, then by length if one is a prefix of the other.
func lessPositions(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

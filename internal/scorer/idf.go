// Package scorer is the pure scoring math over a single PostingMap: an IDF
// cache, SMART-triple vector-space cosine scoring, and Okapi BM25. Nothing
// here touches the file system or knows about fields; it operates on
// whatever PostingMap and corpus size it's given.
package scorer

import (
	"math"
	"sync"

	"github.com/cinesearch/retrieval/internal/index"
)

// IDFCache memoizes idf(t) = ln(N/df(t)) over one PostingMap so inner
// scoring loops never recompute it. idf(t) is 0 whenever t is absent from
// the index or df(t) is 0 — never negative, and 0 exactly when df(t) is 0 or
// N (the N case because ln(N/N) = 0).
type IDFCache struct {
	mu       sync.Mutex
	postings index.PostingMap
	n        int
	cache    map[string]float64
}

// NewIDFCache returns a cache bound to postings for a corpus of n documents.
func NewIDFCache(postings index.PostingMap, n int) *IDFCache {
	return &IDFCache{postings: postings, n: n, cache: make(map[string]float64)}
}

// IDF returns idf(term), computing and caching it on first use.
func (c *IDFCache) IDF(term string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache[term]; ok {
		return v
	}
	df := c.postings.DocumentFrequency(term)
	var idf float64
	if df > 0 {
		idf = math.Log(float64(c.n) / float64(df))
	}
	c.cache[term] = idf
	return idf
}

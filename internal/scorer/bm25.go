package scorer

import "github.com/cinesearch/retrieval/internal/index"

// BM25Params holds the Okapi BM25 tuning parameters (k1, b). Defaults are
// 1.5 and 0.75; Config overrides them if set.
type BM25Params struct {
	K1 float64
	B  float64
}

// DefaultBM25Params returns the engine's hard-coded defaults.
func DefaultBM25Params() BM25Params {
	return BM25Params{K1: 1.5, B: 0.75}
}

// BM25Scores computes Okapi BM25 scores for every candidate document
// against the deduplicated query term set:
//
//	score(d) = sum over t in Q present in the index of
//	  idf(t) * (tf(t,d)*(k1+1)) / (tf(t,d) + k1*(1 - b + b*|d|/avg|))
func BM25Scores(postings index.PostingMap, queryTerms []string, lengths index.FieldLengthMap, avgLength float64, params BM25Params, idf *IDFCache) map[string]float64 {
	unique := dedupe(queryTerms)
	candidates := postings.CandidateDocIDs(unique)

	scores := make(map[string]float64, len(candidates))
	for _, docID := range candidates {
		scores[docID] = bm25ScoreOne(postings, unique, docID, lengths[docID], avgLength, params, idf)
	}
	return scores
}

func bm25ScoreOne(postings index.PostingMap, terms []string, docID string, docLen int, avgLength float64, params BM25Params, idf *IDFCache) float64 {
	var score float64
	for _, term := range terms {
		if postings.DocumentFrequency(term) == 0 {
			continue
		}
		tf := float64(postings.TermFrequency(term, docID))
		if tf == 0 {
			continue
		}
		numerator := tf * (params.K1 + 1)
		denominator := tf + params.K1*(1-params.B+params.B*float64(docLen)/avgLength)
		score += idf.IDF(term) * (numerator / denominator)
	}
	return score
}

func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

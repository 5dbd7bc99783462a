package scorer

import (
	"math"
	"strings"

	"github.com/cinesearch/retrieval/internal/index"
)

// SMARTMethod splits a "xyz.xyz" pair into its document and query triples,
// e.g. "lnc.ltc" -> ("lnc", "ltc"). The document triple comes first,
// matching the original scorer's method[:3]/method[4:] split.
func SMARTMethod(method string) (documentTriple, queryTriple string, ok bool) {
	parts := strings.SplitN(method, ".", 2)
	if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// QueryTermFrequencies counts occurrences of each term within the query
// itself — the query_tfs the SMART "n"/"l" tf codes read from.
func QueryTermFrequencies(queryTerms []string) map[string]int {
	tf := make(map[string]int, len(queryTerms))
	for _, t := range queryTerms {
		tf[t]++
	}
	return tf
}

// tfWeight applies the SMART tf code: "n" is raw tf, "l" is 1+ln(tf) (only
// defined for tf>0 — a term with tf=0 contributes 0 regardless of code).
func tfWeight(code byte, tf int) float64 {
	if tf <= 0 {
		return 0
	}
	if code == 'l' {
		return 1 + math.Log(float64(tf))
	}
	return float64(tf)
}

// VectorSpaceScores computes cosine (or raw dot-product, depending on the
// normalization code) scores for every candidate document against query,
// using the SMART triple pair in method. Only terms present in postings
// contribute; documents absent from every query term's posting list never
// appear in the result.
func VectorSpaceScores(postings index.PostingMap, queryTerms []string, method string, idf *IDFCache) (map[string]float64, bool) {
	docTriple, queryTriple, ok := SMARTMethod(method)
	if !ok {
		return nil, false
	}
	candidates := postings.CandidateDocIDs(queryTerms)
	queryTF := QueryTermFrequencies(queryTerms)

	uniqueTerms := make([]string, 0, len(queryTF))
	for t := range queryTF {
		uniqueTerms = append(uniqueTerms, t)
	}

	scores := make(map[string]float64, len(candidates))
	for _, docID := range candidates {
		scores[docID] = vectorSpaceScoreOne(postings, uniqueTerms, queryTF, docID, docTriple, queryTriple, idf)
	}
	return scores, true
}

// vectorSpaceScoreOne scores a single document against the query, building
// the document and query vectors over the terms the index actually knows
// about and taking their dot product.
func vectorSpaceScoreOne(postings index.PostingMap, terms []string, queryTF map[string]int, docID, docTriple, queryTriple string, idf *IDFCache) float64 {
	docVec := make([]float64, 0, len(terms))
	queryVec := make([]float64, 0, len(terms))

	for _, term := range terms {
		if postings.DocumentFrequency(term) == 0 {
			continue
		}

		dv := tfWeight(docTriple[0], postings.TermFrequency(term, docID))
		qv := tfWeight(queryTriple[0], queryTF[term])

		if docTriple[1] == 't' {
			dv *= idf.IDF(term)
		}
		if queryTriple[1] == 't' {
			qv *= idf.IDF(term)
		}

		docVec = append(docVec, dv)
		queryVec = append(queryVec, qv)
	}

	if docTriple[2] == 'c' {
		normalize(docVec)
	}
	if queryTriple[2] == 'c' {
		normalize(queryVec)
	}

	return dot(docVec, queryVec)
}

// normalize divides v by its Euclidean norm in place. A zero-vector input
// (every component 0, including the empty vector) is left as all zeros: this
// case never errors, it just scores 0.
func normalize(v []float64) {
	var sumSquares float64
	for _, x := range v {
		sumSquares += x * x
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for i := range v {
		v[i] /= norm
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

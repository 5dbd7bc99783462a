// Package eval computes standard information-retrieval quality metrics —
// precision, recall, F1, average precision, DCG, and reciprocal rank — over
// a ranked list of predicted document IDs against a set of actually
// relevant ones.
package eval

import "math"

// Precision returns, across every query, the fraction of predicted IDs that
// are actually relevant: sum(true positives) / sum(distinct predicted IDs).
// Queries are aggregated rather than averaged per-query, so a query with a
// longer result list weighs proportionally more.
func Precision(actual, predicted [][]string) float64 {
	var tp, total int
	for i := range predicted {
		tp += intersectionSize(actual[i], predicted[i])
		total += len(uniqueSet(predicted[i]))
	}
	if total == 0 {
		return 0
	}
	return float64(tp) / float64(total)
}

// Recall returns, across every query, the fraction of actually relevant IDs
// that were predicted: sum(true positives) / sum(distinct actual IDs).
func Recall(actual, predicted [][]string) float64 {
	var tp, total int
	for i := range predicted {
		tp += intersectionSize(actual[i], predicted[i])
		total += len(uniqueSet(actual[i]))
	}
	if total == 0 {
		return 0
	}
	return float64(tp) / float64(total)
}

// F1 is the harmonic mean of Precision and Recall; 0 if both are 0.
func F1(actual, predicted [][]string) float64 {
	p := Precision(actual, predicted)
	r := Recall(actual, predicted)
	if p == 0 && r == 0 {
		return 0
	}
	return (2 * p * r) / (p + r)
}

// AveragePrecision computes the standard AP for one query: the mean, over
// every relevant document retrieved, of precision measured at that
// document's rank. Returns 0 if actual has no relevant documents.
func AveragePrecision(actual, predicted []string) float64 {
	relevant := uniqueSet(actual)
	if len(relevant) == 0 {
		return 0
	}
	var sum float64
	tp := 0
	for i, doc := range predicted {
		if _, ok := relevant[doc]; ok {
			tp++
			sum += float64(tp) / float64(i+1)
		}
	}
	return sum / float64(len(relevant))
}

// MeanAveragePrecision averages AveragePrecision across a batch of queries.
func MeanAveragePrecision(actual, predicted [][]string) float64 {
	if len(predicted) == 0 {
		return 0
	}
	var sum float64
	for i := range predicted {
		sum += AveragePrecision(actual[i], predicted[i])
	}
	return sum / float64(len(predicted))
}

// DCG computes discounted cumulative gain for one query with binary
// relevance: rank-0's hit contributes 1, every later hit at 0-indexed rank i
// contributes 1/log2(i+2) (the reduces-to-1 form of the standard discount
// at rank 0, since log2(2)=1).
func DCG(actual, predicted []string) float64 {
	relevant := uniqueSet(actual)
	var sum float64
	for i, doc := range predicted {
		if _, ok := relevant[doc]; !ok {
			continue
		}
		if i == 0 {
			sum++
			continue
		}
		sum += 1 / math.Log2(float64(i)+2)
	}
	return sum
}

// NDCG normalizes DCG by the ideal DCG — the score a perfect ranking of
// actual's relevant documents would achieve. Returns 0 when actual is empty.
func NDCG(actual, predicted []string) float64 {
	idealOrder := make([]string, len(actual))
	copy(idealOrder, actual)
	ideal := DCG(actual, idealOrder)
	if ideal == 0 {
		return 0
	}
	return DCG(actual, predicted) / ideal
}

// ReciprocalRank returns 1/(rank of the first relevant document), or 0 if
// none of predicted is relevant.
func ReciprocalRank(actual, predicted []string) float64 {
	relevant := uniqueSet(actual)
	for i, doc := range predicted {
		if _, ok := relevant[doc]; ok {
			return 1 / float64(i+1)
		}
	}
	return 0
}

// MeanReciprocalRank averages ReciprocalRank across a batch of queries.
func MeanReciprocalRank(actual, predicted [][]string) float64 {
	if len(predicted) == 0 {
		return 0
	}
	var sum float64
	for i := range predicted {
		sum += ReciprocalRank(actual[i], predicted[i])
	}
	return sum / float64(len(predicted))
}

func uniqueSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func intersectionSize(actual, predicted []string) int {
	a := uniqueSet(actual)
	p := uniqueSet(predicted)
	count := 0
	for id := range p {
		if _, ok := a[id]; ok {
			count++
		}
	}
	return count
}

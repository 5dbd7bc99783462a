package eval

import "testing"

func TestPrecision_PerfectMatch(t *testing.T) {
	actual := [][]string{{"a", "b"}}
	predicted := [][]string{{"a", "b"}}
	if got := Precision(actual, predicted); got != 1 {
		t.Fatalf("Precision = %v, want 1", got)
	}
}

func TestPrecision_NoOverlap(t *testing.T) {
	actual := [][]string{{"a", "b"}}
	predicted := [][]string{{"c", "d"}}
	if got := Precision(actual, predicted); got != 0 {
		t.Fatalf("Precision = %v, want 0", got)
	}
}

func TestRecall_PartialMatch(t *testing.T) {
	actual := [][]string{{"a", "b", "c"}}
	predicted := [][]string{{"a", "z"}}
	got := Recall(actual, predicted)
	want := 1.0 / 3.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Recall = %v, want %v", got, want)
	}
}

func TestF1_ZeroWhenBothZero(t *testing.T) {
	actual := [][]string{{"a"}}
	predicted := [][]string{{"z"}}
	if got := F1(actual, predicted); got != 0 {
		t.Fatalf("F1 = %v, want 0", got)
	}
}

func TestAveragePrecision_OrderMatters(t *testing.T) {
	actual := []string{"a", "b"}
	firstHit := AveragePrecision(actual, []string{"a", "x", "b"})
	lastHit := AveragePrecision(actual, []string{"x", "a", "b"})
	if firstHit <= lastHit {
		t.Fatalf("expected earlier hits to score higher AP: first=%v last=%v", firstHit, lastHit)
	}
}

func TestAveragePrecision_EmptyActualIsZero(t *testing.T) {
	if got := AveragePrecision(nil, []string{"a"}); got != 0 {
		t.Fatalf("AP with no relevant docs = %v, want 0", got)
	}
}

func TestMeanAveragePrecision_AveragesAcrossQueries(t *testing.T) {
	actual := [][]string{{"a"}, {"b"}}
	predicted := [][]string{{"a"}, {"x"}}
	got := MeanAveragePrecision(actual, predicted)
	want := 0.5
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("MAP = %v, want %v", got, want)
	}
}

func TestDCG_FirstRankHitScoresOne(t *testing.T) {
	if got := DCG([]string{"a"}, []string{"a"}); got != 1 {
		t.Fatalf("DCG = %v, want 1", got)
	}
}

func TestNDCG_PerfectRankingScoresOne(t *testing.T) {
	actual := []string{"a", "b", "c"}
	got := NDCG(actual, []string{"a", "b", "c"})
	if diff := got - 1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("NDCG of perfect ranking = %v, want 1", got)
	}
}

func TestNDCG_EmptyActualIsZero(t *testing.T) {
	if got := NDCG(nil, []string{"a"}); got != 0 {
		t.Fatalf("NDCG with no relevant docs = %v, want 0", got)
	}
}

func TestReciprocalRank_FirstHitAtRankTwo(t *testing.T) {
	got := ReciprocalRank([]string{"b"}, []string{"a", "b", "c"})
	if got != 0.5 {
		t.Fatalf("ReciprocalRank = %v, want 0.5", got)
	}
}

func TestReciprocalRank_NoHitIsZero(t *testing.T) {
	got := ReciprocalRank([]string{"z"}, []string{"a", "b", "c"})
	if got != 0 {
		t.Fatalf("ReciprocalRank = %v, want 0", got)
	}
}

func TestMeanReciprocalRank_AveragesAcrossQueries(t *testing.T) {
	actual := [][]string{{"a"}, {"b"}}
	predicted := [][]string{{"a"}, {"x", "b"}}
	got := MeanReciprocalRank(actual, predicted)
	want := (1.0 + 0.5) / 2
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("MRR = %v, want %v", got, want)
	}
}

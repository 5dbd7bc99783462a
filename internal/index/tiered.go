package index

// TieredPostings partitions a source PostingMap's per-term postings into
// three disjoint tiers by term frequency, so a tiered query can consult
// high-tf postings first and fall back to lower tiers only when it needs
// more candidates.
type TieredPostings struct {
	FirstTier  PostingMap // tf >= High
	SecondTier PostingMap // Med <= tf < High
	ThirdTier  PostingMap // 1 <= tf < Med
}

// BuildTiered partitions source by the given thresholds. The multiset union
// over the three tiers, per (term, docID), equals source.
func BuildTiered(source PostingMap, high, med int) TieredPostings {
	t := TieredPostings{
		FirstTier:  NewPostingMap(),
		SecondTier: NewPostingMap(),
		ThirdTier:  NewPostingMap(),
	}
	for term, postings := range source {
		for docID, tf := range postings {
			switch {
			case tf >= high:
				t.FirstTier.Add(term, docID, tf)
			case tf >= med:
				t.SecondTier.Add(term, docID, tf)
			default:
				t.ThirdTier.Add(term, docID, tf)
			}
		}
	}
	return t
}

// Tiers returns the three PostingMaps in consult order: first, second, then
// third tier.
func (t TieredPostings) Tiers() []PostingMap {
	return []PostingMap{t.FirstTier, t.SecondTier, t.ThirdTier}
}

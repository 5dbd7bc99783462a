// Package lsh detects near-duplicate documents via MinHash signatures and
// banded Locality-Sensitive Hashing: build a binary characteristic matrix of
// shingles against documents, hash each document down to a short signature
// that preserves Jaccard similarity in expectation, then bucket documents
// whose signatures agree on at least one band.
package lsh

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/bits-and-blooms/bitset"
)

// Deduper runs MinHash+LSH over a fixed-size document set. NumHashes must
// equal Bands*RowsPerBand.
type Deduper struct {
	NumHashes   int
	Bands       int
	RowsPerBand int
	ShingleK    int
	rng         *rand.Rand
}

// New returns a Deduper seeded from the current time, matching how this
// module seeds every other randomized structure.
func New(numHashes, bands, rowsPerBand, shingleK int) *Deduper {
	return NewWithRand(numHashes, bands, rowsPerBand, shingleK, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand returns a Deduper using the given source of randomness,
// letting callers (tests, primarily) fix the signature matrix deterministically.
func NewWithRand(numHashes, bands, rowsPerBand, shingleK int, rng *rand.Rand) *Deduper {
	return &Deduper{NumHashes: numHashes, Bands: bands, RowsPerBand: rowsPerBand, ShingleK: shingleK, rng: rng}
}

// ShingleDocument splits a whitespace-tokenized document into overlapping
// k-word shingles, e.g. k=2 over "a b c" yields {"a b", "b c"}.
func ShingleDocument(doc string, k int) map[string]struct{} {
	words := strings.Fields(doc)
	shingles := make(map[string]struct{})
	for i := 0; i+k <= len(words); i++ {
		shingles[strings.Join(words[i:i+k], " ")] = struct{}{}
	}
	return shingles
}

// CharacteristicMatrix is the binary shingle-by-document incidence matrix:
// Shingles[i] is present in document j iff Rows[i].Test(uint(j)).
type CharacteristicMatrix struct {
	Shingles []string
	Rows     []*bitset.BitSet
}

// BuildCharacteristicMatrix indexes every distinct shingle across
// shingledDocs and builds one bitset row per shingle over the document set.
func BuildCharacteristicMatrix(shingledDocs []map[string]struct{}) CharacteristicMatrix {
	seen := make(map[string]int)
	var shingles []string
	for _, doc := range shingledDocs {
		for s := range doc {
			if _, ok := seen[s]; !ok {
				seen[s] = len(shingles)
				shingles = append(shingles, s)
			}
		}
	}

	rows := make([]*bitset.BitSet, len(shingles))
	for i := range rows {
		rows[i] = bitset.New(uint(len(shingledDocs)))
	}
	for docIdx, doc := range shingledDocs {
		for s := range doc {
			rows[seen[s]].Set(uint(docIdx))
		}
	}
	return CharacteristicMatrix{Shingles: shingles, Rows: rows}
}

// MinHashSignature builds the NumHashes x numDocs signature matrix:
// signature[h][doc] is the index, in the h-th random shingle permutation, of
// the first shingle present in doc.
func (d *Deduper) MinHashSignature(cm CharacteristicMatrix, numDocs int) [][]int {
	signature := make([][]int, d.NumHashes)
	for h := 0; h < d.NumHashes; h++ {
		perm := d.rng.Perm(len(cm.Shingles))
		row := make([]int, numDocs)
		for doc := 0; doc < numDocs; doc++ {
			row[doc] = firstPresentShingle(cm, perm, doc)
		}
		signature[h] = row
	}
	return signature
}

// firstPresentShingle scans perm (a permutation of shingle indices) and
// returns the rank of the first shingle present in doc. A document with no
// shingles at all (the empty document) has no defined MinHash value; this
// returns len(perm) as a sentinel, which sorts after every real rank.
func firstPresentShingle(cm CharacteristicMatrix, perm []int, doc int) int {
	for rank, shingleIdx := range perm {
		if cm.Rows[shingleIdx].Test(uint(doc)) {
			return rank
		}
	}
	return len(perm)
}

// Buckets maps a band's combined signature hash to the set of document
// indices sharing it, represented as a roaring bitmap so bucket membership
// tests and unions across bands stay cheap even for large corpora.
type Buckets map[string]*roaring.Bitmap

// LSHBuckets partitions the signature matrix into d.Bands bands of
// d.RowsPerBand rows each, hashing every document's per-band row slice into
// a bucket key. Two documents landing in the same bucket for any band are
// near-duplicate candidates.
func (d *Deduper) LSHBuckets(signature [][]int, numDocs int) Buckets {
	buckets := make(Buckets)
	for band := 0; band < d.Bands; band++ {
		start := band * d.RowsPerBand
		end := start + d.RowsPerBand
		for doc := 0; doc < numDocs; doc++ {
			key := bandKey(band, signature, start, end, doc)
			bm, ok := buckets[key]
			if !ok {
				bm = roaring.New()
				buckets[key] = bm
			}
			bm.Add(uint32(doc))
		}
	}
	return buckets
}

func bandKey(band int, signature [][]int, start, end, doc int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(band))
	for row := start; row < end; row++ {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(signature[row][doc]))
	}
	return b.String()
}

// Jaccard computes |A∩B| / |A∪B| over two shingle sets. An empty union
// (both sets empty) scores 0 rather than dividing by zero.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for s := range a {
		if _, ok := b[s]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// CandidatePair is one near-duplicate candidate surfaced by LSHBuckets,
// normalized so the lower document index always comes first.
type CandidatePair struct {
	DocA, DocB int
}

// CandidatePairs flattens every bucket with more than one member into the
// distinct unordered pairs of documents it groups together.
func CandidatePairs(buckets Buckets) []CandidatePair {
	seen := make(map[CandidatePair]struct{})
	var pairs []CandidatePair
	for _, bm := range buckets {
		if bm.GetCardinality() < 2 {
			continue
		}
		members := bm.ToArray()
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := int(members[i]), int(members[j])
				if a > b {
					a, b = b, a
				}
				pair := CandidatePair{DocA: a, DocB: b}
				if _, dup := seen[pair]; dup {
					continue
				}
				seen[pair] = struct{}{}
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs
}

// VerificationResult reports how many candidate pairs passed the
// random-baseline check, out of how many were tested.
type VerificationResult struct {
	Correct int
	Total   int
}

// Score returns Correct/Total, or 0 if no pairs were tested.
func (v VerificationResult) Score() float64 {
	if v.Total == 0 {
		return 0
	}
	return float64(v.Correct) / float64(v.Total)
}

// VerifyCandidatePairs checks each candidate pair's Jaccard similarity
// against 5 randomly chosen baseline documents (excluding the pair itself):
// a pair only counts as a correct near-duplicate if its similarity beats
// every one of the 5 baselines.
func (d *Deduper) VerifyCandidatePairs(pairs []CandidatePair, shingledDocs []map[string]struct{}) VerificationResult {
	result := VerificationResult{Total: len(pairs)}
	n := len(shingledDocs)
	for _, pair := range pairs {
		pairScore := Jaccard(shingledDocs[pair.DocA], shingledDocs[pair.DocB])

		beatAll := true
		for i := 0; i < 5; i++ {
			randomDoc := d.randomDocExcluding(n, pair.DocA, pair.DocB)
			baselineScore := Jaccard(shingledDocs[pair.DocA], shingledDocs[randomDoc])
			if pairScore <= baselineScore {
				beatAll = false
			}
		}
		if beatAll {
			result.Correct++
		}
	}
	return result
}

// randomDocExcluding picks a uniformly random document index other than a
// and b. A corpus with 2 or fewer documents has no valid baseline; a is
// returned then, so the baseline compares DocA with itself.
func (d *Deduper) randomDocExcluding(n, a, b int) int {
	if n <= 2 {
		return a
	}
	for {
		candidate := d.rng.Intn(n)
		if candidate != a && candidate != b {
			return candidate
		}
	}
}

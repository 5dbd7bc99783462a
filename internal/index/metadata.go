package index

import "github.com/cinesearch/retrieval/internal/model"

// Metadata is the corpus-wide statistics BM25 and reporting need: the total
// document count and, per field, the mean FieldLengthMap value.
type Metadata struct {
	DocumentCount         int
	AverageDocumentLength map[model.Field]float64
}

// BuildMetadata computes Metadata from the builder's current field-length
// maps and document count.
func BuildMetadata(b *Builder) Metadata {
	m := Metadata{
		DocumentCount:         len(b.Documents),
		AverageDocumentLength: make(map[model.Field]float64),
	}
	for _, f := range model.AllFields {
		lengths := b.Lengths[f]
		if len(lengths) == 0 {
			m.AverageDocumentLength[f] = 0
			continue
		}
		sum := 0
		for _, l := range lengths {
			sum += l
		}
		m.AverageDocumentLength[f] = float64(sum) / float64(len(lengths))
	}
	return m
}

package index

import (
	"errors"
	"testing"

	"github.com/cinesearch/retrieval/internal/model"
)

func TestStore_WriteReadPostingsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	pm := NewPostingMap()
	pm.Add("spider", "m1", 3)

	if err := s.WritePostings(model.FieldSummaries, pm); err != nil {
		t.Fatal(err)
	}
	got, err := s.ReadPostings(model.FieldSummaries)
	if err != nil {
		t.Fatal(err)
	}
	if got.TermFrequency("spider", "m1") != 3 {
		t.Fatalf("round trip lost tf, got %+v", got)
	}
}

func TestStore_ReadMissingFileReturnsErrIndexFileMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.ReadPostings(model.FieldSummaries)
	if !errors.Is(err, ErrIndexFileMissing) {
		t.Fatalf("expected ErrIndexFileMissing, got %v", err)
	}
}

func TestStore_TieredRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	source := NewPostingMap()
	source.Add("a", "d1", 20)
	tiered := BuildTiered(source, 10, 3)

	if err := s.WriteTiered(model.FieldGenres, tiered); err != nil {
		t.Fatal(err)
	}
	got, err := s.ReadTiered(model.FieldGenres)
	if err != nil {
		t.Fatal(err)
	}
	if got.FirstTier.TermFrequency("a", "d1") != 20 {
		t.Fatalf("expected tiered round trip to preserve first tier, got %+v", got)
	}
}

func TestStore_MetadataRoundTripPreservesMisspelling(t *testing.T) {
	s := NewStore(t.TempDir())
	meta := Metadata{
		DocumentCount: 5,
		AverageDocumentLength: map[model.Field]float64{
			model.FieldStars: 2.5,
		},
	}
	if err := s.WriteMetadata(meta); err != nil {
		t.Fatal(err)
	}
	got, err := s.ReadMetadata()
	if err != nil {
		t.Fatal(err)
	}
	if got.DocumentCount != 5 {
		t.Fatalf("expected document count 5, got %d", got.DocumentCount)
	}
	if got.AverageDocumentLength[model.FieldStars] != 2.5 {
		t.Fatalf("expected average length 2.5, got %v", got.AverageDocumentLength[model.FieldStars])
	}
}

func TestStore_ReadMetadataRejectsUnknownField(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := writeJSON(s.path("documents_metadata_index.json"), metadataFile{
		DocumentCount:         1,
		AverageDocumentLength: map[string]float64{"not_a_real_field": 1},
	}); err != nil {
		t.Fatal(err)
	}
	_, err := s.ReadMetadata()
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestStore_WriteAllPersistsEveryField(t *testing.T) {
	s := NewStore(t.TempDir())
	b := NewBuilder()
	b.AddDocument(sampleRecord("m1"))
	tiered := make(map[model.Field]TieredPostings)
	for _, f := range model.AllFields {
		tiered[f] = BuildTiered(b.Postings[f], 10, 3)
	}
	meta := BuildMetadata(b)

	if err := s.WriteAll(b, tiered, meta); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadDocuments(); err != nil {
		t.Fatalf("expected documents_index.json written: %v", err)
	}
	if _, err := s.ReadLengths(model.FieldStars); err != nil {
		t.Fatalf("expected stars length index written: %v", err)
	}
}

package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cinesearch/retrieval/internal/model"
)

// Store persists and loads indexes under a single configured directory,
// one JSON document per file.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir. dir is created on first write if
// it does not already exist.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("index: creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("index: creating %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("index: encoding %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrIndexFileMissing, path)
		}
		return fmt.Errorf("index: opening %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptIndex, path, err)
	}
	return nil
}

// WritePostings writes <field>_index.json for a field's PostingMap.
func (s *Store) WritePostings(f model.Field, pm PostingMap) error {
	return writeJSON(s.path(f.String()+"_index.json"), pm)
}

// ReadPostings reads <field>_index.json back into a PostingMap.
func (s *Store) ReadPostings(f model.Field) (PostingMap, error) {
	pm := NewPostingMap()
	if err := readJSON(s.path(f.String()+"_index.json"), &pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// WriteLengths writes <field>_document_length_index.json.
func (s *Store) WriteLengths(f model.Field, lengths FieldLengthMap) error {
	return writeJSON(s.path(f.String()+"_document_length_index.json"), lengths)
}

// ReadLengths reads <field>_document_length_index.json.
func (s *Store) ReadLengths(f model.Field) (FieldLengthMap, error) {
	lengths := make(FieldLengthMap)
	if err := readJSON(s.path(f.String()+"_document_length_index.json"), &lengths); err != nil {
		return nil, err
	}
	return lengths, nil
}

// tieredFile is the on-disk shape of <field>_tiered_index.json: three named
// PostingMaps rather than a positional array.
type tieredFile struct {
	FirstTier  PostingMap `json:"first_tier"`
	SecondTier PostingMap `json:"second_tier"`
	ThirdTier  PostingMap `json:"third_tier"`
}

// WriteTiered writes <field>_tiered_index.json.
func (s *Store) WriteTiered(f model.Field, t TieredPostings) error {
	return writeJSON(s.path(f.String()+"_tiered_index.json"), tieredFile{
		FirstTier:  t.FirstTier,
		SecondTier: t.SecondTier,
		ThirdTier:  t.ThirdTier,
	})
}

// ReadTiered reads <field>_tiered_index.json.
func (s *Store) ReadTiered(f model.Field) (TieredPostings, error) {
	var tf tieredFile
	if err := readJSON(s.path(f.String()+"_tiered_index.json"), &tf); err != nil {
		return TieredPostings{}, err
	}
	return TieredPostings{FirstTier: tf.FirstTier, SecondTier: tf.SecondTier, ThirdTier: tf.ThirdTier}, nil
}

// WriteDocuments writes documents_index.json.
func (s *Store) WriteDocuments(docs map[string]model.Normalized) error {
	return writeJSON(s.path("documents_index.json"), docs)
}

// ReadDocuments reads documents_index.json.
func (s *Store) ReadDocuments() (map[string]model.Normalized, error) {
	docs := make(map[string]model.Normalized)
	if err := readJSON(s.path("documents_index.json"), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// metadataFile mirrors documents_metadata_index.json's on-disk shape,
// preserving the "averge_document_length" misspelling for compatibility
// with the upstream crawler's existing snapshots.
type metadataFile struct {
	DocumentCount         int                `json:"document_count"`
	AverageDocumentLength map[string]float64 `json:"averge_document_length"`
}

// WriteMetadata writes documents_metadata_index.json.
func (s *Store) WriteMetadata(m Metadata) error {
	mf := metadataFile{
		DocumentCount:         m.DocumentCount,
		AverageDocumentLength: make(map[string]float64, len(m.AverageDocumentLength)),
	}
	for f, avg := range m.AverageDocumentLength {
		mf.AverageDocumentLength[f.String()] = avg
	}
	return writeJSON(s.path("documents_metadata_index.json"), mf)
}

// ReadMetadata reads documents_metadata_index.json.
func (s *Store) ReadMetadata() (Metadata, error) {
	var mf metadataFile
	if err := readJSON(s.path("documents_metadata_index.json"), &mf); err != nil {
		return Metadata{}, err
	}
	m := Metadata{
		DocumentCount:         mf.DocumentCount,
		AverageDocumentLength: make(map[model.Field]float64, len(mf.AverageDocumentLength)),
	}
	for name, avg := range mf.AverageDocumentLength {
		field, ok := model.ParseField(name)
		if !ok {
			return Metadata{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		m.AverageDocumentLength[field] = avg
	}
	return m, nil
}

// WriteAll persists every index kind for every configured field, plus the
// documents pseudo-index and corpus metadata. It is the bulk-save path a
// CLI `index` subcommand uses after a full build.
func (s *Store) WriteAll(b *Builder, tiered map[model.Field]TieredPostings, meta Metadata) error {
	for _, f := range model.AllFields {
		if err := s.WritePostings(f, b.Postings[f]); err != nil {
			return err
		}
		if err := s.WriteLengths(f, b.Lengths[f]); err != nil {
			return err
		}
		if t, ok := tiered[f]; ok {
			if err := s.WriteTiered(f, t); err != nil {
				return err
			}
		}
	}
	if err := s.WriteDocuments(b.Documents); err != nil {
		return err
	}
	return s.WriteMetadata(meta)
}

// Package bleve implements db.Store on an embedded bleve index, either in
// memory or on local disk.
package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

var errClosed = errors.New("bleve store closed")

// Config holds embedded index settings.
type Config struct {
	// Dir holds one sub-directory per index. Empty keeps indexes in memory.
	Dir string
}

// Store keeps named bleve indexes.
type Store struct {
	dir string

	mu      sync.RWMutex
	indexes map[string]bleve.Index
	closed  bool
}

// NewStore creates an embedded store. Existing on-disk indexes are opened lazily.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}
	return &Store{dir: cfg.Dir, indexes: make(map[string]bleve.Index)}, nil
}

// Ping fails only after Close.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: errClosed}
	}
	return nil
}

// Close closes every open index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, idx := range s.indexes {
		_ = idx.Close()
		delete(s.indexes, name)
	}
	s.closed = true
}

// CreateIndex builds a bleve mapping from the definition and creates the index.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	m, err := buildMapping(def)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	var idx bleve.Index
	if s.dir == "" {
		idx, err = bleve.NewMemOnly(m)
	} else {
		idx, err = bleve.New(s.path(def.Name), m)
		if errors.Is(err, bleve.ErrorIndexPathExists) {
			return db.ErrIndexExists
		}
	}
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	s.indexes[def.Name] = idx
	return nil
}

// IndexExists reports whether the index is open or present on disk.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	_, err := s.index(name)
	if errors.Is(err, db.ErrIndexNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// PutDocuments indexes documents in one batch.
func (s *Store) PutDocuments(_ context.Context, index string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}

	idx, err := s.index(index)
	if err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}

	batch := idx.NewBatch()
	for i := range docs {
		if err := batch.Index(docs[i].ID, docs[i].Flatten()); err != nil {
			return &db.Error{Op: db.OpPut, Err: fmt.Errorf("document %s: %w", docs[i].ID, err)}
		}
	}
	if err := idx.Batch(batch); err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

// index returns an open index, opening it from disk on first use.
func (s *Store) index(name string) (bleve.Index, error) {
	s.mu.RLock()
	idx, ok := s.indexes[name]
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, errClosed
	}
	if ok {
		return idx, nil
	}
	if s.dir == "" {
		return nil, db.ErrIndexNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.indexes[name]; ok {
		return idx, nil
	}
	idx, err := bleve.Open(s.path(name))
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return nil, db.ErrIndexNotFound
	}
	if err != nil {
		return nil, err
	}
	s.indexes[name] = idx
	return idx, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".bleve")
}

// analyzerName splits on anything but letters and digits, so identifiers
// like pkg:npm/foo@1.0.0 tokenize the same way sanitized query text does.
const analyzerName = "sw360"

func buildMapping(def *db.IndexDefinition) (mapping.IndexMapping, error) {
	m := bleve.NewIndexMapping()
	err := m.AddCustomTokenizer(analyzerName, map[string]any{
		"type":   regexp.Name,
		"regexp": `[\p{L}\p{N}]+`,
	})
	if err != nil {
		return nil, err
	}
	err = m.AddCustomAnalyzer(analyzerName, map[string]any{
		"type":          custom.Name,
		"tokenizer":     analyzerName,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}
	m.DefaultAnalyzer = analyzerName

	doc := bleve.NewDocumentMapping()

	for _, f := range def.Fields {
		var fm *mapping.FieldMapping
		switch f.Type {
		case db.IndexFieldText:
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = analyzerName
		case db.IndexFieldTag:
			fm = bleve.NewKeywordFieldMapping()
			fm.IncludeInAll = false
		case db.IndexFieldStored:
			fm = bleve.NewTextFieldMapping()
			fm.Index = false
			fm.IncludeInAll = false
		default:
			continue
		}
		fm.Store = true
		doc.AddFieldMappingsAt(f.Name, fm)
	}

	m.DefaultMapping = doc
	return m, nil
}

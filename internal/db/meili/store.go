// Package meili implements db.Store on Meilisearch.
package meili

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const rankingScoreKey = "_rankingScore"

// Config holds Meilisearch connection settings.
type Config struct {
	URL    string
	APIKey string
}

// Store talks to one Meilisearch instance.
type Store struct {
	client meilisearch.ServiceManager
}

// NewStore creates a Meilisearch store. No request is made until first use.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	return &Store{client: meilisearch.New(cfg.URL, meilisearch.WithAPIKey(cfg.APIKey))}, nil
}

// Ping checks the health endpoint.
func (s *Store) Ping(_ context.Context) error {
	if _, err := s.client.Health(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close is a no-op; the HTTP client holds no long-lived state.
func (s *Store) Close() {}

// CreateIndex creates the index and declares its filterable and searchable attributes.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	exists, err := s.IndexExists(ctx, def.Name)
	if err != nil {
		return err
	}
	if exists {
		return db.ErrIndexExists
	}

	if _, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        def.Name,
		PrimaryKey: db.FieldID,
	}); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	index := s.client.Index(def.Name)

	tags := def.FieldsOf(db.IndexFieldTag)
	filterable := make([]interface{}, len(tags))
	for i, v := range tags {
		filterable[i] = v
	}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: fmt.Errorf("filterable attributes: %w", err)}
	}

	searchable := def.FieldsOf(db.IndexFieldText)
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: fmt.Errorf("searchable attributes: %w", err)}
	}
	return nil
}

// IndexExists reports whether the index is known to the server.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	if _, err := s.client.GetIndex(name); err != nil {
		var apiErr *meilisearch.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// PutDocuments enqueues documents for indexing. Meilisearch applies them asynchronously.
func (s *Store) PutDocuments(_ context.Context, index string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}

	records := make([]map[string]string, len(docs))
	for i := range docs {
		records[i] = docs[i].Flatten()
	}
	if _, err := s.client.Index(index).AddDocuments(records, nil); err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

// SearchText runs one search request with type filter and attribute restriction.
func (s *Store) SearchText(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	p := q.Prepare()
	if p.IsEmpty() {
		return &db.SearchResult{}, nil
	}

	// Meilisearch prefix-matches the last term by default; quoting turns
	// the query into an exact phrase.
	text := p.Phrase
	if !p.Prefix {
		text = `"` + text + `"`
	}

	req := &meilisearch.SearchRequest{
		Limit:                int64(q.Limit),
		ShowRankingScore:     true,
		AttributesToSearchOn: q.Fields,
	}
	if f := typeFilter(q.Types); f != "" {
		req.Filter = []string{f}
	}

	resp, err := s.client.Index(q.Index).Search(text, req)
	if err != nil {
		var apiErr *meilisearch.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	entries := make([]db.SearchEntry, 0, len(resp.Hits))
	for i, hit := range resp.Hits {
		e, err := hitToEntry(hit)
		if err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("hit %d: %w", i, err)}
		}
		entries = append(entries, e)
	}
	return &db.SearchResult{Total: int(resp.EstimatedTotalHits), Entries: entries}, nil
}

func typeFilter(types []string) string {
	if len(types) == 0 {
		return ""
	}
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return fmt.Sprintf("%s IN [%s]", db.FieldType, strings.Join(quoted, ", "))
}

func hitToEntry(hit meilisearch.Hit) (db.SearchEntry, error) {
	e := db.SearchEntry{Fields: make(map[string]string, len(hit))}
	for k, raw := range hit {
		if k == rankingScoreKey {
			if err := json.Unmarshal(raw, &e.Score); err != nil {
				return db.SearchEntry{}, fmt.Errorf("decode %s: %w", rankingScoreKey, err)
			}
			continue
		}
		if strings.HasPrefix(k, "_") {
			continue
		}
		e.Fields[k] = decodeString(raw)
	}
	e.ID = e.Fields[db.FieldID]
	return e, nil
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

package search

import (
	"context"
	"testing"

	"github.com/eclipse-sw360/sw360-search/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchTextFn func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchTextFn != nil {
		return m.searchTextFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, Config{Realm: "catalog", Index: "sw360db", Limit: 200})
	return repo, ms
}

func entry(id, typ string, score float64, fields map[string]string) db.SearchEntry {
	f := map[string]string{db.FieldID: id, db.FieldType: typ}
	for k, v := range fields {
		f[k] = v
	}
	return db.SearchEntry{ID: id, Score: score, Fields: f}
}

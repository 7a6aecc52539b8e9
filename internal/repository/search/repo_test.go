package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eclipse-sw360/sw360-search/internal/db"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
)

func TestSearch_BuildsTextQuery(t *testing.T) {
	repo := New(&mockStore{searchTextFn: func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		want := &db.TextQuery{
			Index:           "sw360db",
			Text:            "openssl",
			Wildcard:        true,
			LeadingWildcard: true,
			Types:           []string{"component", "license"},
			Fields:          []string{"name", "fullname"},
			Limit:           50,
		}
		if diff := cmp.Diff(want, q); diff != "" {
			t.Errorf("query mismatch (-want +got):\n%s", diff)
		}
		return &db.SearchResult{}, nil
	}}, Config{Realm: "catalog", Index: "sw360db", Limit: 50, LeadingWildcard: true})

	if _, err := repo.Search(context.Background(), Query{
		Text:     "openssl",
		Types:    []string{"component", "license"},
		Wildcard: true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearch_MaskRestriction(t *testing.T) {
	tests := []struct {
		name       string
		mask       []string
		wantTypes  []string
		wantFields []string
	}{
		{"empty mask", nil, nil, []string{"name", "fullname", "title"}},
		{"user only", []string{"user"}, []string{"user"}, []string{"fullname"}},
		{"obligation", []string{"obligation"}, []string{"obligation"}, []string{"title"}},
		{"type without fields", []string{"todo"}, []string{"todo"}, nil},
		{"document alone", []string{"document"}, []string{}, nil},
		{"document last", []string{"project", "document"}, []string{"project"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, ms := newTestRepo(t)
			var got *db.TextQuery
			ms.searchTextFn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
				got = q
				return &db.SearchResult{}, nil
			}

			if _, err := repo.Search(context.Background(), Query{Text: "x", Types: tt.mask}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Types) != len(tt.wantTypes) || (len(tt.wantTypes) > 0 && !cmp.Equal(got.Types, tt.wantTypes)) {
				t.Errorf("types = %v, want %v", got.Types, tt.wantTypes)
			}
			if !cmp.Equal(got.Fields, tt.wantFields) {
				t.Errorf("fields = %v, want %v", got.Fields, tt.wantFields)
			}
		})
	}
}

func TestSearch_ParsesResults(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 4,
			Entries: []db.SearchEntry{
				entry("r1", domain.TypeRelease, 2.5, map[string]string{"name": "OpenSSL", "version": "3.0.1"}),
				entry("l1", domain.TypeLicense, 1.5, map[string]string{"fullname": "Apache License 2.0"}),
				entry("c1", domain.TypeComponent, 1.0, map[string]string{"name": ""}),
				entry("a1", domain.TypeAttachment, 0.5, map[string]string{"name": "readme.txt"}),
			},
		}, nil
	}

	results, err := repo.Search(context.Background(), Query{Text: "open"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	r := results[0]
	if r.ID() != "r1" || r.Name() != "OpenSSL 3.0.1" || r.Type() != domain.TypeRelease || r.Score() != 2.5 {
		t.Errorf("unexpected first result: id=%s name=%q type=%s score=%v", r.ID(), r.Name(), r.Type(), r.Score())
	}
	if r.Realm() != "catalog" {
		t.Errorf("realm = %q, want catalog", r.Realm())
	}
	if r.Attribute("version") != "3.0.1" {
		t.Errorf("attribute version = %q", r.Attribute("version"))
	}
	if results[1].Name() != "Apache License 2.0" {
		t.Errorf("license name = %q", results[1].Name())
	}
}

func TestSearch_IDFallsBackToField(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		e := entry("p1", domain.TypeProject, 1, map[string]string{"name": "Fossology"})
		e.ID = ""
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{e}}, nil
	}

	results, err := repo.Search(context.Background(), Query{Text: "foss"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID() != "p1" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearch_CustomNameFields(t *testing.T) {
	ms := &mockStore{searchTextFn: func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{
			entry("u1", domain.TypeUser, 1, map[string]string{"email": "jane@example.com", "fullname": "Jane Doe"}),
		}}, nil
	}}
	repo := New(ms, Config{
		Realm: "users", Index: "sw360users", Limit: 10,
		NameFields: domain.NameFields{domain.TypeUser: {"fullname"}},
	})

	results, err := repo.Search(context.Background(), Query{Text: "jane"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name() != "Jane Doe" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearch_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
	}

	_, err := repo.Search(context.Background(), Query{Text: "x"})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearch_EmptyResult(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchTextFn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, nil
	}

	results, err := repo.Search(context.Background(), Query{Text: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestRealm(t *testing.T) {
	repo, _ := newTestRepo(t)
	if repo.Realm() != "catalog" {
		t.Errorf("Realm() = %q", repo.Realm())
	}
}

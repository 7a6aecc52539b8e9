package search

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/visibility"
	"github.com/eclipse-sw360/sw360-search/internal/metrics"
	reposearch "github.com/eclipse-sw360/sw360-search/internal/repository/search"
)

type mockRepo struct {
	last     reposearch.Query
	called   int
	searchFn func(q reposearch.Query) ([]result.Result, error)
}

func (m *mockRepo) Search(_ context.Context, q reposearch.Query) ([]result.Result, error) {
	m.last = q
	m.called++
	if m.searchFn != nil {
		return m.searchFn(q)
	}
	return nil, nil
}

func TestBackend_SearchIsWildcard(t *testing.T) {
	repo := &mockRepo{}
	b := NewBackend("catalog", repo, nil)

	if _, err := b.Search(context.Background(), "openssl", []string{"component"}, domain.User{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.last.Wildcard {
		t.Error("expected wildcard query")
	}
	if repo.last.Text != "openssl" || len(repo.last.Types) != 1 || repo.last.Types[0] != "component" {
		t.Errorf("unexpected query: %+v", repo.last)
	}
}

func TestBackend_SearchWithoutWildcard(t *testing.T) {
	repo := &mockRepo{}
	b := NewBackend("users", repo, visibility.AllowAll{})

	if _, err := b.SearchWithoutWildcard(context.Background(), `"pkg:npm/a"`, domain.User{}, []string{"user"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.last.Wildcard {
		t.Error("expected exact query")
	}
	if repo.last.Text != `"pkg:npm/a"` {
		t.Errorf("text = %s", repo.last.Text)
	}
}

func TestBackend_AppliesVisibility(t *testing.T) {
	repo := &mockRepo{searchFn: func(reposearch.Query) ([]result.Result, error) {
		return []result.Result{
			result.New("catalog", "p1", "Secret", domain.TypeProject, 2, map[string]string{
				visibility.AttrVisibility: visibility.Private,
				visibility.AttrCreatedBy:  "owner@example.com",
			}),
			result.New("catalog", "p2", "Open", domain.TypeProject, 1, map[string]string{
				visibility.AttrVisibility: visibility.Everyone,
			}),
			result.New("catalog", "c1", "OpenSSL", domain.TypeComponent, 1, nil),
		}, nil
	}}
	b := NewBackend("catalog", repo, visibility.Projects{})

	got, err := b.Search(context.Background(), "x", nil, domain.User{Email: "someone@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID() != "p2" || got[1].ID() != "c1" {
		t.Fatalf("unexpected visible results: %v", ids(got))
	}

	got, err = b.Search(context.Background(), "x", nil, domain.User{Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("owner should see all 3, got %v", ids(got))
	}
}

func TestBackend_FuncPolicy(t *testing.T) {
	repo := &mockRepo{searchFn: func(reposearch.Query) ([]result.Result, error) {
		return []result.Result{hit("catalog", "a", 1), hit("catalog", "b", 1)}, nil
	}}
	b := NewBackend("catalog", repo, visibility.Func(func(r result.Result, _ domain.User) bool {
		return r.ID() == "b"
	}))

	got, err := b.Search(context.Background(), "x", nil, domain.User{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID() != "b" {
		t.Fatalf("unexpected results: %v", ids(got))
	}
}

func TestBackend_FilterKeepsRepositorySlice(t *testing.T) {
	shared := []result.Result{hit("catalog", "a", 1), hit("catalog", "b", 1), hit("catalog", "c", 1)}
	repo := &mockRepo{searchFn: func(reposearch.Query) ([]result.Result, error) {
		return shared, nil
	}}
	b := NewBackend("catalog", repo, visibility.Func(func(r result.Result, _ domain.User) bool {
		return r.ID() == "c"
	}))

	for i := 0; i < 2; i++ {
		got, err := b.Search(context.Background(), "x", nil, domain.User{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID() != "c" {
			t.Fatalf("call %d: unexpected results: %v", i, ids(got))
		}
	}
	if got := ids(shared); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("repository slice modified: %v", got)
	}
}

func TestBackend_WrapsErrors(t *testing.T) {
	cause := errors.New("connection refused")
	repo := &mockRepo{searchFn: func(reposearch.Query) ([]result.Result, error) {
		return nil, cause
	}}
	b := NewBackend("users", repo, nil)

	_, err := b.Search(context.Background(), "x", nil, domain.User{})
	if !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Realm != "users" {
		t.Fatalf("expected users BackendError, got %v", err)
	}
	if repo.called != 1 {
		t.Errorf("expected exactly one attempt, got %d", repo.called)
	}
}

func TestBackend_RecordsMetrics(t *testing.T) {
	okCounter := metrics.BackendRequestsTotal.WithLabelValues("metrics-test", modeExact, "ok")
	errCounter := metrics.BackendRequestsTotal.WithLabelValues("metrics-test", modeWildcard, "error")
	okBefore := testutil.ToFloat64(okCounter)
	errBefore := testutil.ToFloat64(errCounter)

	repo := &mockRepo{}
	b := NewBackend("metrics-test", repo, nil)
	_, _ = b.SearchWithoutWildcard(context.Background(), `"x"`, domain.User{}, nil)

	repo.searchFn = func(reposearch.Query) ([]result.Result, error) { return nil, errors.New("boom") }
	_, _ = b.Search(context.Background(), "x", nil, domain.User{})

	if got := testutil.ToFloat64(okCounter) - okBefore; got != 1 {
		t.Errorf("ok counter delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(errCounter) - errBefore; got != 1 {
		t.Errorf("error counter delta = %v, want 1", got)
	}
}

func TestBackend_Realm(t *testing.T) {
	if got := NewBackend("users", &mockRepo{}, nil).Realm(); got != "users" {
		t.Errorf("Realm() = %q", got)
	}
}

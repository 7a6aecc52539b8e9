package search

import (
	"context"
	"time"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/visibility"
	"github.com/eclipse-sw360/sw360-search/internal/metrics"
	reposearch "github.com/eclipse-sw360/sw360-search/internal/repository/search"
)

// Query modes used as metric labels.
const (
	modeWildcard = "wildcard"
	modeExact    = "exact"
)

var _ RealmSearcher = (*Backend)(nil)

// Backend adapts one realm's repository to the orchestrator and enforces
// the realm's visibility policy.
type Backend struct {
	realm  string
	repo   Repository
	policy visibility.Policy
}

// NewBackend creates a realm backend. A nil policy shows every hit.
func NewBackend(realm string, repo Repository, policy visibility.Policy) *Backend {
	if policy == nil {
		policy = visibility.AllowAll{}
	}
	return &Backend{realm: realm, repo: repo, policy: policy}
}

// Realm returns the realm name.
func (b *Backend) Realm() string { return b.realm }

// Search runs a wildcard query.
func (b *Backend) Search(
	ctx context.Context, text string, types []string, user domain.User,
) ([]result.Result, error) {
	return b.search(ctx, reposearch.Query{Text: text, Types: types, Wildcard: true}, user)
}

// SearchWithoutWildcard runs the text as given, typically an already quoted variant.
func (b *Backend) SearchWithoutWildcard(
	ctx context.Context, quoted string, user domain.User, types []string,
) ([]result.Result, error) {
	return b.search(ctx, reposearch.Query{Text: quoted, Types: types}, user)
}

func (b *Backend) search(ctx context.Context, q reposearch.Query, user domain.User) ([]result.Result, error) {
	mode := modeExact
	if q.Wildcard {
		mode = modeWildcard
	}

	start := time.Now()
	hits, err := b.repo.Search(ctx, q)
	metrics.BackendRequestDuration.WithLabelValues(b.realm, mode).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(b.realm, mode, "error").Inc()
		return nil, domain.NewBackendError(b.realm, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(b.realm, mode, "ok").Inc()

	visible := make([]result.Result, 0, len(hits))
	for _, r := range hits {
		if b.policy.IsVisible(r, user) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

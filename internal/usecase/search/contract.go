package search

import (
	"context"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	reposearch "github.com/eclipse-sw360/sw360-search/internal/repository/search"
)

// Repository runs one query against one realm's index.
type Repository interface {
	Search(ctx context.Context, q reposearch.Query) ([]result.Result, error)
}

// RealmSearcher is what the orchestrator needs from a realm backend.
type RealmSearcher interface {
	Realm() string
	Search(ctx context.Context, text string, types []string, user domain.User) ([]result.Result, error)
	SearchWithoutWildcard(ctx context.Context, quoted string, user domain.User, types []string) ([]result.Result, error)
}

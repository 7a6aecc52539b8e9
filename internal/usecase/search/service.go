package search

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/request"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/typemask"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/variant"
	"github.com/eclipse-sw360/sw360-search/internal/metrics"
)

// Service fans a search out over the users and catalog realms and merges the hits.
type Service struct {
	users          RealmSearcher
	catalog        RealmSearcher
	logger         *zap.Logger
	maxConcurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxConcurrency runs up to n backend calls at once. n <= 1 is sequential.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) { s.maxConcurrency = n }
}

// New creates a search service.
func New(users, catalog RealmSearcher, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{users: users, catalog: catalog, logger: logger, maxConcurrency: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search queries both realms without a type restriction.
func (s *Service) Search(ctx context.Context, req request.Request, user domain.User) ([]result.Result, error) {
	return s.SearchFiltered(ctx, request.FromText(req.Text()), user)
}

// SearchFiltered runs every planned backend call, merges the hits without
// duplicates in plan order and sorts them by score, highest first.
// Any backend failure fails the whole search.
func (s *Service) SearchFiltered(ctx context.Context, req request.Request, user domain.User) ([]result.Result, error) {
	if req.IsEmpty() {
		return []result.Result{}, nil
	}

	plan := s.plan(req.Text(), req.Mask())
	batches, err := s.execute(ctx, plan, user)
	if err != nil {
		return nil, err
	}

	results := merge(batches)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	metrics.SearchCalls.Observe(float64(len(plan)))
	metrics.SearchResults.Observe(float64(len(results)))
	s.logger.Debug("Search completed",
		zap.String("text", req.Text()),
		zap.Strings("mask", req.Mask()),
		zap.Int("calls", len(plan)),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// call is one planned backend request.
type call struct {
	backend RealmSearcher
	text    string
	types   []string
	exact   bool
}

func (c call) run(ctx context.Context, user domain.User) ([]result.Result, error) {
	if c.exact {
		return c.backend.SearchWithoutWildcard(ctx, c.text, user, c.types)
	}
	return c.backend.Search(ctx, c.text, c.types, user)
}

// plan lists the backend calls in merge order: users realm first, then catalog.
// Package URLs are searched as exact phrases, once per encoding variant.
func (s *Service) plan(text string, mask typemask.Mask) []call {
	var calls []call
	add := func(b RealmSearcher, types []string) {
		if !variant.IsPackageURL(text) {
			calls = append(calls, call{backend: b, text: text, types: types})
			return
		}
		for _, v := range variant.Expand(text) {
			calls = append(calls, call{backend: b, text: v, types: types, exact: true})
		}
	}

	if mask.QueriesUsers() {
		add(s.users, typemask.UsersFilter())
	}
	if mask.QueriesCatalog() {
		add(s.catalog, mask.CatalogFilter())
	}
	return calls
}

// execute runs the plan. Each call writes its own slot so the merge order
// does not depend on completion order.
func (s *Service) execute(ctx context.Context, plan []call, user domain.User) ([][]result.Result, error) {
	batches := make([][]result.Result, len(plan))

	if s.maxConcurrency <= 1 {
		for i, c := range plan {
			hits, err := c.run(ctx, user)
			if err != nil {
				return nil, err
			}
			batches[i] = hits
		}
		return batches, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, c := range plan {
		g.Go(func() error {
			hits, err := c.run(gctx, user)
			if err != nil {
				return err
			}
			batches[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// merge keeps the first occurrence of every (realm, id).
func merge(batches [][]result.Result) []result.Result {
	seen := make(map[result.Key]struct{})
	merged := make([]result.Result, 0)
	for _, batch := range batches {
		for _, r := range batch {
			k := r.Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}

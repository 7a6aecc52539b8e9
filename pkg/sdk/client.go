package sw360search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eclipse-sw360/sw360-search/internal/app"
	"github.com/eclipse-sw360/sw360-search/internal/db"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
	dombatch "github.com/eclipse-sw360/sw360-search/internal/domain/batch"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/request"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/variant"
	healthuc "github.com/eclipse-sw360/sw360-search/internal/usecase/health"
)

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	SearchFiltered(ctx context.Context, req request.Request, user domain.User) ([]result.Result, error)
}

type indexUseCase interface {
	Index(ctx context.Context, docs []db.Document) []dombatch.Result
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the sw360search SDK entry point.
type Client struct {
	app       *app.App
	searchSvc searchUseCase
	indexers  map[string]indexUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New opens both realms and creates their indexes when missing.
// The provided context is used for the readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, o := range opts {
		o.apply(cc)
	}

	cfg := cc.cfg
	cfg.ApplyDefaults()
	if err := cfg.ValidateRealms(); err != nil {
		return nil, fmt.Errorf("sw360search: %w", err)
	}

	obs, err := newObserver(cc.logger, cc.metricsReg)
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, &cfg, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("sw360search: %w", err)
	}
	if err := a.EnsureIndexes(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("sw360search: %w", err)
	}

	return wireClient(a, obs)
}

func wireClient(a *app.App, obs *observer) (*Client, error) {
	indexers := make(map[string]indexUseCase, 2)
	for _, realm := range []string{RealmUsers, RealmCatalog} {
		ix, err := a.Indexer(realm)
		if err != nil {
			return nil, fmt.Errorf("sw360search: %w", err)
		}
		indexers[realm] = ix
	}
	return &Client{
		app:       a,
		searchSvc: a.Search,
		indexers:  indexers,
		healthSvc: a.Health,
		obs:       obs,
	}, nil
}

// Close releases both realm stores.
func (c *Client) Close() {
	if c.app != nil {
		c.app.Close()
	}
}

// Search runs text across every document type.
func (c *Client) Search(ctx context.Context, text string, user User) ([]Result, error) {
	return c.SearchFiltered(ctx, text, nil, user)
}

// SearchFiltered runs text restricted to the given document types.
// A nil or empty types slice searches every type.
func (c *Client) SearchFiltered(ctx context.Context, text string, types []string, user User) (res []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeSearch(start, len(res), err) }()

	req, err := request.New(&text, types)
	if err != nil {
		return nil, err
	}
	results, err := c.searchSvc.SearchFiltered(ctx, req, toDomainUser(user))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromDomainResults(results), nil
}

// Index validates docs and writes them to a realm, reporting one result per document.
func (c *Client) Index(ctx context.Context, realm string, docs []Document) (res []BatchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index", start, err) }()

	ix, ok := c.indexers[realm]
	if !ok {
		return nil, fmt.Errorf("%q: %w", realm, ErrUnknownRealm)
	}
	return fromBatchResults(ix.Index(ctx, toDBDocuments(docs))), nil
}

// Expand returns the quoted query variants searched for a package URL text.
func Expand(text string) []string {
	return variant.Expand(text)
}

func toDomainUser(u User) domain.User {
	return domain.User{Email: u.Email, Department: u.Department, Group: domain.UserGroup(u.Group)}
}

func fromDomainResults(rs []result.Result) []Result {
	out := make([]Result, len(rs))
	for i := range rs {
		r := &rs[i]
		out[i] = Result{ID: r.ID(), Name: r.Name(), Type: r.Type(), Score: r.Score(), Realm: r.Realm()}
	}
	return out
}

func toDBDocuments(docs []Document) []db.Document {
	out := make([]db.Document, len(docs))
	for i, d := range docs {
		out[i] = db.Document{ID: d.ID, Type: d.Type, Fields: d.Fields}
	}
	return out
}

func fromBatchResults(rs []dombatch.Result) []BatchResult {
	out := make([]BatchResult, len(rs))
	for i, r := range rs {
		out[i] = BatchResult{ID: r.ID(), OK: r.Status() == dombatch.StatusOK, Err: r.Err()}
	}
	return out
}

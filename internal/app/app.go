// Package app assembles the two realms into search, indexing and health services.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eclipse-sw360/sw360-search/internal/config"
	"github.com/eclipse-sw360/sw360-search/internal/db"
	"github.com/eclipse-sw360/sw360-search/internal/db/driver"
	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/visibility"
	searchrepo "github.com/eclipse-sw360/sw360-search/internal/repository/search"
	healthuc "github.com/eclipse-sw360/sw360-search/internal/usecase/health"
	"github.com/eclipse-sw360/sw360-search/internal/usecase/indexing"
	searchuc "github.com/eclipse-sw360/sw360-search/internal/usecase/search"
)

// App holds the wired services and owns the realm stores.
type App struct {
	Search *searchuc.Service
	Health *healthuc.Service

	indexers map[string]*indexing.Service
	stores   []db.Store
}

// New opens both realm stores, waits for them and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	users, err := open(ctx, &cfg.Realms.Users)
	if err != nil {
		return nil, fmt.Errorf("realm %s: %w", domain.RealmUsers, err)
	}
	catalog, err := open(ctx, &cfg.Realms.Catalog)
	if err != nil {
		users.Close()
		return nil, fmt.Errorf("realm %s: %w", domain.RealmCatalog, err)
	}
	logger.Info("Connected to realm stores",
		zap.String("users_driver", cfg.Realms.Users.Driver),
		zap.String("catalog_driver", cfg.Realms.Catalog.Driver),
	)
	return Wire(cfg, users, catalog, logger), nil
}

func open(ctx context.Context, rc *config.RealmConfig) (db.Store, error) {
	store, err := driver.Open(rc)
	if err != nil {
		return nil, err
	}
	if err := db.WaitForReady(ctx, store, time.Duration(rc.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("store not ready: %w", err)
	}
	return store, nil
}

// Wire builds the services on already opened stores. The App takes ownership of both.
func Wire(cfg *config.Config, users, catalog db.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		indexers: make(map[string]*indexing.Service, 2),
		stores:   []db.Store{users, catalog},
	}

	usersBackend := a.realm(domain.RealmUsers, &cfg.Realms.Users, &cfg.Search, users, indexing.UsersOnly, logger)
	catalogBackend := a.realm(domain.RealmCatalog, &cfg.Realms.Catalog, &cfg.Search, catalog, indexing.CatalogOnly, logger)

	a.Search = searchuc.New(usersBackend, catalogBackend, logger,
		searchuc.WithMaxConcurrency(cfg.Search.MaxConcurrency))
	a.Health = healthuc.New(map[string]healthuc.Pinger{
		domain.RealmUsers:   users,
		domain.RealmCatalog: catalog,
	})
	return a
}

func (a *App) realm(
	name string,
	rc *config.RealmConfig,
	sc *config.SearchConfig,
	store db.Store,
	accepts func(string) bool,
	logger *zap.Logger,
) *searchuc.Backend {
	repo := searchrepo.New(store, searchrepo.Config{
		Realm:           name,
		Index:           rc.Index,
		Limit:           sc.ResultLimit,
		LeadingWildcard: sc.LeadingWildcard,
	})

	def := db.DocumentIndex(rc.Index, driver.KeyPrefixes(rc)...).MustBuild()
	a.indexers[name] = indexing.New(name, store, def, accepts, logger.With(zap.String("realm", name)))

	return searchuc.NewBackend(name, repo, policyFor(rc.Visibility))
}

func policyFor(name string) visibility.Policy {
	if name == config.VisibilityProjects {
		return visibility.Projects{}
	}
	return visibility.AllowAll{}
}

// Indexer returns the indexing service of a realm.
func (a *App) Indexer(realm string) (*indexing.Service, error) {
	ix, ok := a.indexers[realm]
	if !ok {
		return nil, fmt.Errorf("%q: %w", realm, domain.ErrUnknownRealm)
	}
	return ix, nil
}

// EnsureIndexes creates the index of every realm that lacks one.
func (a *App) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{domain.RealmUsers, domain.RealmCatalog} {
		if err := a.indexers[name].EnsureIndex(ctx); err != nil {
			return fmt.Errorf("realm %s: %w", name, err)
		}
	}
	return nil
}

// Close releases both realm stores.
func (a *App) Close() {
	for _, s := range a.stores {
		s.Close()
	}
}

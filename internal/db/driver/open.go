// Package driver opens the realm store selected in configuration.
package driver

import (
	"fmt"

	"github.com/eclipse-sw360/sw360-search/internal/config"
	"github.com/eclipse-sw360/sw360-search/internal/db"
	dbBleve "github.com/eclipse-sw360/sw360-search/internal/db/bleve"
	dbMeili "github.com/eclipse-sw360/sw360-search/internal/db/meili"
	dbPostgres "github.com/eclipse-sw360/sw360-search/internal/db/postgres"
	dbRedis "github.com/eclipse-sw360/sw360-search/internal/db/redis"
)

// Open creates the store for one realm.
func Open(cfg *config.RealmConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Redis.Addrs,
			Username:  cfg.Redis.Username,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis store: %w", err)
		}
		return s, nil
	case config.DriverBleve:
		s, err := dbBleve.NewStore(dbBleve.Config{Dir: cfg.Bleve.Path})
		if err != nil {
			return nil, fmt.Errorf("create bleve store: %w", err)
		}
		return s, nil
	case config.DriverMeili:
		s, err := dbMeili.NewStore(dbMeili.Config{URL: cfg.Meili.URL, APIKey: cfg.Meili.APIKey})
		if err != nil {
			return nil, fmt.Errorf("create meili store: %w", err)
		}
		return s, nil
	case config.DriverPostgres:
		s, err := dbPostgres.NewStore(dbPostgres.Config{
			DSN:    cfg.Postgres.DSN,
			Tables: map[string]string{cfg.Index: cfg.Postgres.Table},
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// KeyPrefixes returns the hash key prefixes an index over this realm covers.
// Only the redis driver stores documents under key prefixes.
func KeyPrefixes(cfg *config.RealmConfig) []string {
	if cfg.Driver != config.DriverRedis {
		return nil
	}
	return []string{cfg.Redis.KeyPrefix}
}

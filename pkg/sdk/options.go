package sw360search

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eclipse-sw360/sw360-search/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	cfg config.Config

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func (c *clientConfig) realms(fn func(r *config.RealmConfig)) {
	fn(&c.cfg.Realms.Users)
	fn(&c.cfg.Realms.Catalog)
}

// WithRedis stores both realms in RediSearch indexes.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.realms(func(r *config.RealmConfig) {
			r.Driver = config.DriverRedis
			r.Redis.Addrs = []string{addr}
			r.Redis.Password = password
		})
	})
}

// WithBleve stores both realms in embedded bleve indexes under dir.
// An empty dir keeps the indexes in memory.
func WithBleve(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.realms(func(r *config.RealmConfig) {
			r.Driver = config.DriverBleve
			r.Bleve.Path = dir
		})
	})
}

// WithMeili stores both realms in a Meilisearch instance.
func WithMeili(url, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.realms(func(r *config.RealmConfig) {
			r.Driver = config.DriverMeili
			r.Meili.URL = url
			r.Meili.APIKey = apiKey
		})
	})
}

// WithPostgres stores both realms in PostgreSQL full-text tables.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.realms(func(r *config.RealmConfig) {
			r.Driver = config.DriverPostgres
			r.Postgres.DSN = dsn
		})
	})
}

// WithIndexNames overrides the index names of the two realms.
// Defaults: sw360users and sw360db.
func WithIndexNames(users, catalog string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cfg.Realms.Users.Index = users
		c.cfg.Realms.Catalog.Index = catalog
	})
}

// WithResultLimit caps the hits returned by each backend query. Default: 200.
func WithResultLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cfg.Search.ResultLimit = n
	})
}

// WithLeadingWildcard also matches terms in the middle of words.
func WithLeadingWildcard() Option {
	return optionFunc(func(c *clientConfig) {
		c.cfg.Search.LeadingWildcard = true
	})
}

// WithMaxConcurrency runs up to n backend queries of one search at once.
// Default: 1 (sequential).
func WithMaxConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cfg.Search.MaxConcurrency = n
	})
}

// WithoutProjectVisibility shows every catalog project regardless of the searching user.
func WithoutProjectVisibility() Option {
	return optionFunc(func(c *clientConfig) {
		c.cfg.Realms.Catalog.Visibility = config.VisibilityAll
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

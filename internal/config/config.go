package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Driver names accepted in realms.<name>.driver.
const (
	DriverRedis    = "redis"
	DriverBleve    = "bleve"
	DriverMeili    = "meili"
	DriverPostgres = "postgres"
)

// Visibility policies accepted in realms.<name>.visibility.
const (
	VisibilityAll      = "all"
	VisibilityProjects = "projects"
)

// Config holds the sw360 search service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Search  SearchConfig  `yaml:"search"`
	Realms  RealmsConfig  `yaml:"realms"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchConfig holds query behaviour shared by both realms.
type SearchConfig struct {
	ResultLimit     int  `yaml:"result_limit"` // max hits per backend query
	LeadingWildcard bool `yaml:"leading_wildcard"`
	MaxConcurrency  int  `yaml:"max_concurrency"` // 1 = sequential fan-out
}

// RealmsConfig holds the two document stores.
type RealmsConfig struct {
	Users   RealmConfig `yaml:"users"`
	Catalog RealmConfig `yaml:"catalog"`
}

// RealmConfig describes where one realm's index lives.
type RealmConfig struct {
	Driver           string         `yaml:"driver"` // redis, bleve, meili, postgres (default: redis)
	Index            string         `yaml:"index"`
	Visibility       string         `yaml:"visibility"` // all, projects
	ReadinessTimeout int            `yaml:"readiness_timeout_sec"`
	Redis            RedisConfig    `yaml:"redis"`
	Bleve            BleveConfig    `yaml:"bleve"`
	Meili            MeiliConfig    `yaml:"meili"`
	Postgres         PostgresConfig `yaml:"postgres"`
}

// RedisConfig holds RediSearch connection settings.
type RedisConfig struct {
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	DB        int      `yaml:"db"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// BleveConfig holds embedded index settings. Empty path means in-memory.
type BleveConfig struct {
	Path string `yaml:"path"`
}

// MeiliConfig holds Meilisearch connection settings.
type MeiliConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// PostgresConfig holds PostgreSQL full-text settings.
type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expands env references and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from SW360SEARCH_ENV, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("SW360SEARCH_ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.ResultLimit <= 0 {
		c.Search.ResultLimit = 200
	}
	if c.Search.MaxConcurrency <= 0 {
		c.Search.MaxConcurrency = 1
	}
	c.Realms.Users.applyDefaults("sw360users", VisibilityAll)
	c.Realms.Catalog.applyDefaults("sw360db", VisibilityProjects)
}

func (r *RealmConfig) applyDefaults(index, visibility string) {
	if r.Driver == "" {
		r.Driver = DriverRedis
	}
	if r.Visibility == "" {
		r.Visibility = visibility
	}
	if r.Index == "" {
		r.Index = index
	}
	if r.ReadinessTimeout <= 0 {
		r.ReadinessTimeout = 10
	}
	if r.Redis.KeyPrefix == "" {
		r.Redis.KeyPrefix = "sw360:" + index + ":"
	}
	if r.Postgres.Table == "" {
		r.Postgres.Table = index + "_documents"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	return c.ValidateRealms()
}

// ValidateRealms checks both realm sections. Embedded use skips the HTTP section.
func (c *Config) ValidateRealms() error {
	if err := c.Realms.Users.validate("users"); err != nil {
		return err
	}
	return c.Realms.Catalog.validate("catalog")
}

func (r *RealmConfig) validate(name string) error {
	if r.Visibility != VisibilityAll && r.Visibility != VisibilityProjects {
		return fmt.Errorf("realms.%s.visibility must be all or projects, got %q", name, r.Visibility)
	}
	switch r.Driver {
	case DriverRedis:
		if len(r.Redis.Addrs) == 0 {
			return fmt.Errorf("realms.%s.redis.addrs is required", name)
		}
	case DriverBleve:
		// in-memory when path is empty
	case DriverMeili:
		if r.Meili.URL == "" {
			return fmt.Errorf("realms.%s.meili.url is required", name)
		}
	case DriverPostgres:
		if r.Postgres.DSN == "" {
			return fmt.Errorf("realms.%s.postgres.dsn is required", name)
		}
	default:
		return fmt.Errorf("realms.%s.driver must be one of redis, bleve, meili, postgres, got %q", name, r.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	if path := os.Getenv("SW360SEARCH_CONFIG"); path != "" {
		return path
	}

	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

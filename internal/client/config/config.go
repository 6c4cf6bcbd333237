package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/storage"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// baseURLs are the API presets per environment.
var baseURLs = map[string]string{
	EnvDevelopment: "http://192.168.144.235:8000/api",
	EnvProduction:  "https://api.yraytestings.com.ng/api",
}

// BaseURLFor returns the API preset of env.
func BaseURLFor(env string) (string, error) {
	u, ok := baseURLs[env]
	if !ok {
		return "", fmt.Errorf("unknown environment %q", env)
	}
	return u, nil
}

// Config holds runtime settings for the admin CLI.
//
// Fields:
//   - Environment: "development" or "production"; picks the API preset.
//   - APIBaseURL: explicit API base URL, overrides the preset.
//   - StorageBackend / StoragePath: where credentials are persisted ("sqlite" file or "redis").
//   - RedisAddr / RedisPassword / RedisDB / RedisPrefix: redis backend settings.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenTTL: validity window imposed on issued tokens.
//   - Endpoints: backend paths; empty ones use the defaults.
type Config struct {
	Environment    string
	APIBaseURL     string
	StorageBackend string
	StoragePath    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisPrefix    string
	LogLevel       string
	RequestTimeout time.Duration
	TokenTTL       time.Duration
	Endpoints      client.Endpoints
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "waitlistadmin", "session.db")
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Environment = EnvDevelopment
	c.APIBaseURL = ""
	c.StorageBackend = storage.BackendSQLite
	c.StoragePath = defaultStoragePath()
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = storage.DefaultRedisPrefix
	c.LogLevel = "warn"
	c.RequestTimeout = 15 * time.Second
	c.TokenTTL = common.DefaultTokenTTL
	c.Endpoints = client.DefaultEndpoints()
}

// BaseURL is APIBaseURL when set, the environment preset otherwise.
func (c *Config) BaseURL() (string, error) {
	if c.APIBaseURL != "" {
		return c.APIBaseURL, nil
	}
	return BaseURLFor(c.Environment)
}

func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.StorageBackend,
		Path:          c.StoragePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}

// validate panics on settings no component can work with.
func (c *Config) validate() {
	if _, err := c.BaseURL(); err != nil {
		panic(err)
	}
	switch c.StorageBackend {
	case storage.BackendSQLite, storage.BackendRedis:
	default:
		panic(fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	if c.TokenTTL <= 0 {
		panic(fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.validate()
	return cfg
}

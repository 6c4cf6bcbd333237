package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson(t *testing.T) {
	path := writeJSON(t, `{
		"environment": "production",
		"api_base_url": "http://json/api",
		"storage_backend": "redis",
		"storage_path": "/data/s.db",
		"redis_addr": "json:6379",
		"redis_password": "pw",
		"redis_db": 0,
		"redis_prefix": "jp",
		"log_level": "debug",
		"request_timeout": "20s",
		"token_ttl": 7200000000000,
		"endpoints": {"login": "/v2/login"}
	}`)
	withArgs(t, "-config", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.RedisDB = 9
	parseJson(cfg)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "http://json/api", cfg.APIBaseURL)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, "/data/s.db", cfg.StoragePath)
	assert.Equal(t, "json:6379", cfg.RedisAddr)
	assert.Equal(t, "pw", cfg.RedisPassword)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "jp", cfg.RedisPrefix)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "/v2/login", cfg.Endpoints.Login)
	assert.Empty(t, cfg.Endpoints.Verify)
}

func TestParseJson_PartialKeepsValues(t *testing.T) {
	path := writeJSON(t, `{"log_level":"info"}`)
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)

	assert.Equal(t, "info", cfg.LogLevel)
	cfg.LogLevel = before.LogLevel
	assert.Equal(t, before, *cfg)
}

func TestParseJson_NoFlag(t *testing.T) {
	withArgs(t, "-t", "3")

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)

	assert.Equal(t, before, *cfg)
}

func TestParseJson_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("malformed", func(t *testing.T) {
		withArgs(t, "-c", writeJSON(t, `{"log_level":`))
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}

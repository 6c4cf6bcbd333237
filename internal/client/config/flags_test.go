package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	withArgs(t,
		"-a", "http://flag/api",
		"-e", "production",
		"-s", "redis",
		"-d", "/f/s.db",
		"-r", "flag:6379",
		"-l", "debug",
		"-t", "7",
		"-ttl", "3",
		"-c", "ignored.json",
		"-unknown", "x",
	)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://flag/api", cfg.APIBaseURL)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, "/f/s.db", cfg.StoragePath)
	assert.Equal(t, "flag:6379", cfg.RedisAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3*time.Hour, cfg.TokenTTL)
}

func TestParseFlags_DefaultsUntouched(t *testing.T) {
	withArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseFlags(cfg)

	assert.Equal(t, before, *cfg)
}

func TestParseFlags_BadValuePanics(t *testing.T) {
	withArgs(t, "-t", "abc")

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseFlags(cfg) })
}

func TestParseFlags_KeepsFractionalDurations(t *testing.T) {
	withArgs(t, "-l", "info")

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.TokenTTL = 90 * time.Minute
	cfg.RequestTimeout = 1500 * time.Millisecond
	parseFlags(cfg)

	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

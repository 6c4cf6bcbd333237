package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/flagx"
	"github.com/dmitrijs2005/waitlistadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "15s" or as integer nanoseconds.
type JsonConfig struct {
	Environment    string            `json:"environment"`
	APIBaseURL     string            `json:"api_base_url"`
	StorageBackend string            `json:"storage_backend"`
	StoragePath    string            `json:"storage_path"`
	RedisAddr      string            `json:"redis_addr"`
	RedisPassword  string            `json:"redis_password"`
	RedisDB        *int              `json:"redis_db"`
	RedisPrefix    string            `json:"redis_prefix"`
	LogLevel       string            `json:"log_level"`
	RequestTimeout *timex.Duration   `json:"request_timeout"`
	TokenTTL       *timex.Duration   `json:"token_ttl"`
	Endpoints      *client.Endpoints `json:"endpoints"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Environment, jc.Environment)
	set(&cfg.APIBaseURL, jc.APIBaseURL)
	set(&cfg.StorageBackend, jc.StorageBackend)
	set(&cfg.StoragePath, jc.StoragePath)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisPassword, jc.RedisPassword)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.LogLevel, jc.LogLevel)

	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.Endpoints != nil {
		cfg.Endpoints = *jc.Endpoints
	}
}

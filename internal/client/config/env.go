package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/waitlistadmin/internal/flagx"
)

// Environment variables understood by parseEnv.
const (
	EnvVarEnvironment    = "ADMIN_ENV"
	EnvVarAPIBaseURL     = "ADMIN_API_BASE_URL"
	EnvVarStorageBackend = "ADMIN_STORAGE_BACKEND"
	EnvVarStoragePath    = "ADMIN_STORAGE_PATH"
	EnvVarRedisAddr      = "ADMIN_REDIS_ADDR"
	EnvVarRedisPassword  = "ADMIN_REDIS_PASSWORD"
	EnvVarRedisDB        = "ADMIN_REDIS_DB"
	EnvVarRedisPrefix    = "ADMIN_REDIS_PREFIX"
	EnvVarLogLevel       = "ADMIN_LOG_LEVEL"
	EnvVarRequestTimeout = "ADMIN_REQUEST_TIMEOUT"
	EnvVarTokenTTL       = "ADMIN_TOKEN_TTL"
)

const defaultEnvFile = ".env"

// readDotenv loads the file named by -env-file, or ./.env when present.
// An explicitly named file that cannot be read is an error.
func readDotenv() map[string]string {
	path := flagx.EnvFileFlag(os.Args[1:])
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		panic(err)
	}
	return values
}

// parseEnv overlays Config with ADMIN_* variables. Process environment wins
// over the .env file.
func parseEnv(cfg *Config) {
	dotenv := readDotenv()
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str(EnvVarEnvironment, &cfg.Environment)
	str(EnvVarAPIBaseURL, &cfg.APIBaseURL)
	str(EnvVarStorageBackend, &cfg.StorageBackend)
	str(EnvVarStoragePath, &cfg.StoragePath)
	str(EnvVarRedisAddr, &cfg.RedisAddr)
	str(EnvVarRedisPassword, &cfg.RedisPassword)
	str(EnvVarRedisPrefix, &cfg.RedisPrefix)
	str(EnvVarLogLevel, &cfg.LogLevel)
	dur(EnvVarRequestTimeout, &cfg.RequestTimeout)
	dur(EnvVarTokenTTL, &cfg.TokenTTL)

	if v, ok := lookup(EnvVarRedisDB); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RedisDB = n
	}
}

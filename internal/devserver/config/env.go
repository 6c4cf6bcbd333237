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

const (
	EnvVarAddr              = "DEVSERVER_ADDR"
	EnvVarJWTSecret         = "DEVSERVER_JWT_SECRET"
	EnvVarTokenTTL          = "DEVSERVER_TOKEN_TTL"
	EnvVarVerificationCode  = "DEVSERVER_VERIFICATION_CODE"
	EnvVarSeedAdminEmail    = "DEVSERVER_ADMIN_EMAIL"
	EnvVarSeedAdminPassword = "DEVSERVER_ADMIN_PASSWORD"
	EnvVarBcryptCost        = "DEVSERVER_BCRYPT_COST"
	EnvVarLogLevel          = "DEVSERVER_LOG_LEVEL"
)

// parseEnv overlays Config with DEVSERVER_* variables from the process
// environment and from the .env file (./.env or -env-file). The process
// environment wins.
func parseEnv(cfg *Config) {
	path := flagx.EnvFileFlag(os.Args[1:])
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	dotenv, err := godotenv.Read(path)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		panic(err)
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
	str := func(key string, dst *string) {
		if v := lookup(key); v != "" {
			*dst = v
		}
	}

	str(EnvVarAddr, &cfg.Addr)
	str(EnvVarJWTSecret, &cfg.JWTSecret)
	str(EnvVarVerificationCode, &cfg.VerificationCode)
	str(EnvVarSeedAdminEmail, &cfg.SeedAdminEmail)
	str(EnvVarSeedAdminPassword, &cfg.SeedAdminPassword)
	str(EnvVarLogLevel, &cfg.LogLevel)

	if v := lookup(EnvVarTokenTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.TokenTTL = d
	}
	if v := lookup(EnvVarBcryptCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.BcryptCost = n
	}
}

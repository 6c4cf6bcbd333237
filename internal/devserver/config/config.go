// Package config handles configuration for the development backend,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: bind address of the HTTP server.
//   - BasePath: prefix of every API route (the client's base URL path).
//   - JWTSecret: HMAC secret for signing tokens (HS256). Do not use the default outside development.
//   - TokenTTL: lifetime of issued tokens.
//   - VerificationCode: fixed 6-digit login code; empty means a random code per login.
//   - CodeTTL: how long a login code stays valid.
//   - SeedAdminName / SeedAdminEmail / SeedAdminPassword: the admin created at startup.
//   - BcryptCost: cost of admin password hashes.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Addr              string
	BasePath          string
	JWTSecret         string
	TokenTTL          time.Duration
	VerificationCode  string
	CodeTTL           time.Duration
	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
	BcryptCost        int
	LogLevel          string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and meant for local use only.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.BasePath = "/api"
	c.JWTSecret = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.VerificationCode = ""
	c.CodeTTL = 10 * time.Minute
	c.SeedAdminName = "admin"
	c.SeedAdminEmail = "admin@example.com"
	c.SeedAdminPassword = "admin123"
	c.BcryptCost = 10
	c.LogLevel = "info"
}

func (c *Config) validate() {
	if c.JWTSecret == "" {
		panic(fmt.Errorf("jwt secret must not be empty"))
	}
	if c.VerificationCode != "" && len(c.VerificationCode) != 6 {
		panic(fmt.Errorf("verification code must have 6 digits, got %q", c.VerificationCode))
	}
	if c.TokenTTL <= 0 || c.CodeTTL <= 0 {
		panic(fmt.Errorf("token and code ttl must be positive"))
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	cfg.validate()
	return cfg
}

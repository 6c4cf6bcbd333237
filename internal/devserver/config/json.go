package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/waitlistadmin/internal/flagx"
	"github.com/dmitrijs2005/waitlistadmin/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
type JsonConfig struct {
	Addr              string          `json:"addr"`
	BasePath          string          `json:"base_path"`
	JWTSecret         string          `json:"jwt_secret"`
	TokenTTL          *timex.Duration `json:"token_ttl"`
	VerificationCode  string          `json:"verification_code"`
	CodeTTL           *timex.Duration `json:"code_ttl"`
	SeedAdminName     string          `json:"seed_admin_name"`
	SeedAdminEmail    string          `json:"seed_admin_email"`
	SeedAdminPassword string          `json:"seed_admin_password"`
	BcryptCost        int             `json:"bcrypt_cost"`
	LogLevel          string          `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config. Missing fields keep their current value. Read or decode errors
// panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&config.Addr, c.Addr)
	set(&config.BasePath, c.BasePath)
	set(&config.JWTSecret, c.JWTSecret)
	set(&config.VerificationCode, c.VerificationCode)
	set(&config.SeedAdminName, c.SeedAdminName)
	set(&config.SeedAdminEmail, c.SeedAdminEmail)
	set(&config.SeedAdminPassword, c.SeedAdminPassword)
	set(&config.LogLevel, c.LogLevel)

	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.CodeTTL != nil {
		config.CodeTTL = c.CodeTTL.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address (e.g., ":8000")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-code string fixed verification code
//	-l string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-code", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "secret key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.VerificationCode, "code", config.VerificationCode, "fixed verification code")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		}
	})
}

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
//	-a string   API base URL (overrides the environment preset)
//	-e string   environment: development or production
//	-s string   storage backend: sqlite or redis
//	-d string   path of the sqlite credential file
//	-r string   redis address
//	-l string   log level
//	-t int      request timeout in seconds
//	-ttl int    token validity in hours
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-s", "-d", "-r", "-l", "-t", "-ttl"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.Environment, "e", cfg.Environment, "environment (development|production)")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (sqlite|redis)")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "sqlite credential file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	tokenTTL := fs.Int("ttl", int(cfg.TokenTTL.Hours()), "token validity (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Whole-unit flags only replace durations when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "ttl":
			cfg.TokenTTL = time.Duration(*tokenTTL) * time.Hour
		}
	})
}

// Package config loads runtime configuration for the admin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. ADMIN_* environment variables, also read from a .env file
//     (./.env, or the file given with -env-file). The process environment
//     wins over the file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-e string   environment (development|production)
//	-s string   storage backend (sqlite|redis)
//	-d string   sqlite credential file
//	-r string   redis address
//	-l string   log level
//	-t int      request timeout (seconds)
//	-ttl int    token validity (hours)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "environment": "production",
//	  "storage_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "request_timeout": "15s",
//	  "token_ttl": "24h",
//	  "endpoints": {"login": "/admin/login-admin"}
//	}
//
// Invalid input (unreadable files, malformed values, unknown environment or
// backend) panics at startup.
package config

// Package config loads runtime configuration for the costlens CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including an optional .env file loaded via
//     godotenv (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the platform API
//	-d string   sqlite DSN of the local session cache
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://costs.example.com",
//	  "cache_dsn": "costlens.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config

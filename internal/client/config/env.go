package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment after
// loading an optional .env file from the working directory. A missing .env
// is not an error.
//
// Recognized variables:
//
//	COSTLENS_SERVER_URL   base URL of the platform API
//	COSTLENS_CACHE_DSN    sqlite DSN of the local session cache
//	COSTLENS_TIMEOUT      request timeout, Go duration syntax (e.g. "10s")
//	COSTLENS_LOG_LEVEL    debug | info | warn | error
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("COSTLENS_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("COSTLENS_CACHE_DSN"); v != "" {
		cfg.CacheDSN = v
	}
	if v := os.Getenv("COSTLENS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("COSTLENS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

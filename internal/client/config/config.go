package config

import "time"

// Config holds runtime settings for the costlens CLI.
//
// Fields:
//   - ServerURL: base URL of the platform API (authority + data services).
//   - CacheDSN: sqlite DSN of the local session cache.
//   - RequestTimeout: per-request timeout for API calls.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	ServerURL      string
	CacheDSN       string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.CacheDSN = "costlens.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// one is named via -c/-config), and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

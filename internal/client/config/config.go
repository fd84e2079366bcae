package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the polyglot CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - Timeout: per-request HTTP timeout.
//   - TokenFile: where the session token is kept between invocations.
type Config struct {
	ServerURL string
	Timeout   time.Duration
	TokenFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
	c.TokenFile = defaultTokenFile()
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".polyglot-token"
	}
	return filepath.Join(dir, "polyglot", "token")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Package config handles configuration for the server component: defaults,
// a dotenv file and POLYGLOT_* environment variables, a JSON overlay and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds runtime settings for the polyglot server.
//
// SecretKey has no default: the server refuses to start without one.
// S3Bucket empty disables voice clip uploads; ProviderURL empty switches to
// the built-in echo provider.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	Backend          string
	DatabaseDSN      string
	DBConnectTimeout time.Duration
	SecretKey        string
	SessionTTL       time.Duration
	ProviderURL      string
	ProviderAPIKey   string
	ProviderTimeout  time.Duration
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.Backend = BackendMemory
	c.DBConnectTimeout = 30 * time.Second
	c.SessionTTL = 24 * time.Hour
	c.ProviderTimeout = 15 * time.Second
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then the environment,
// then an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

var (
	ErrNoSecret       = errors.New("secret key is required")
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNoDSN          = errors.New("postgres backend requires a database DSN")
	ErrBadTTL         = errors.New("session TTL must be positive")
)

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, ErrNoSecret)
	}
	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, ErrNoDSN)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, ErrBadTTL)
	}

	return errors.Join(errs...)
}

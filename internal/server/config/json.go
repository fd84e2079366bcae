package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/flagx"
	"github.com/dmitrijs2005/polyglot/internal/timex"
)

// JsonConfig is the on-disk shape of the -c/-config file. Durations accept
// strings such as "24h" or integer nanoseconds. Absent or empty fields leave
// the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	Backend          string         `json:"backend"`
	DatabaseDSN      string         `json:"database_dsn"`
	DBConnectTimeout timex.Duration `json:"db_connect_timeout"`
	SecretKey        string         `json:"secret_key"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	ProviderURL      string         `json:"provider_url"`
	ProviderAPIKey   string         `json:"provider_api_key"`
	ProviderTimeout  timex.Duration `json:"provider_timeout"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads the file named by -c or -config, if any, into config.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFileFlag()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlayDuration := func(dst *time.Duration, v timex.Duration) {
		if v.Duration != 0 {
			*dst = v.Duration
		}
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.Backend, c.Backend)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlayDuration(&config.DBConnectTimeout, c.DBConnectTimeout)
	overlay(&config.SecretKey, c.SecretKey)
	overlayDuration(&config.SessionTTL, c.SessionTTL)
	overlay(&config.ProviderURL, c.ProviderURL)
	overlay(&config.ProviderAPIKey, c.ProviderAPIKey)
	overlayDuration(&config.ProviderTimeout, c.ProviderTimeout)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.LogLevel, c.LogLevel)
}

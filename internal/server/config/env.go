package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "POLYGLOT_"

const defaultEnvFile = ".env"

// parseEnv overlays POLYGLOT_* variables. Values come from the dotenv file
// (-env, or ./.env when present) and from the process environment, which
// wins over the file.
//
// An unreadable explicit -env file or a malformed duration panics.
func parseEnv(config *Config) {
	vars := map[string]string{}

	path := flagx.EnvFileFlag()
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		vars = fileVars
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		panic(err)
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := vars[envPrefix+name]
		return v, ok
	}

	setString := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	setDuration := func(name string, dst *time.Duration) {
		if v, ok := lookup(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	setString("HTTP_ADDR", &config.EndpointAddrHTTP)
	setString("GRPC_ADDR", &config.EndpointAddrGRPC)
	setString("BACKEND", &config.Backend)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setDuration("DB_CONNECT_TIMEOUT", &config.DBConnectTimeout)
	setString("SECRET_KEY", &config.SecretKey)
	setDuration("SESSION_TTL", &config.SessionTTL)
	setString("PROVIDER_URL", &config.ProviderURL)
	setString("PROVIDER_API_KEY", &config.ProviderAPIKey)
	setDuration("PROVIDER_TIMEOUT", &config.ProviderTimeout)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	setString("LOG_LEVEL", &config.LogLevel)
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/flagx"
)

var flagNames = []string{"-a", "-g", "-m", "-d", "-s", "-t", "-w", "-k", "-u", "-p", "-b", "-r", "-e", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-m string   storage backend: memory | postgres
//	-d string   PostgreSQL DSN
//	-s string   session signing secret
//	-t int      session TTL, minutes
//	-w string   translation provider base URL
//	-k string   translation provider API key
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000")
//	-l string   log level: debug | info | warn | error
//
// os.Args is first filtered with flagx.FilterArgs so -c and -env do not
// collide with these.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], flagNames)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.Backend, "m", config.Backend, "storage backend (memory|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing secret")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session TTL (in minutes)")

	fs.StringVar(&config.ProviderURL, "w", config.ProviderURL, "translation provider URL")
	fs.StringVar(&config.ProviderAPIKey, "k", config.ProviderAPIKey, "translation provider API key")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
}

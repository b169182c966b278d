package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8001")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN or "memory"
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-o string   comma-separated CORS origins
//	-p string   password hasher (sha256, argon2id)
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-o", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	corsOrigins := fs.String("o", strings.Join(config.CORSOrigins, ","), "allowed CORS origins, comma separated")
	fs.StringVar(&config.PasswordHasher, "p", config.PasswordHasher, "password hasher (sha256, argon2id)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.CORSOrigins = splitList(*corsOrigins)
}

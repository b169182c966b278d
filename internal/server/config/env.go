package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv loads a dotenv file (the -e/-env flag, or ".env" in the working
// directory) into the process environment and then reads the variables
// below. Variables already set in the environment are not overridden by the
// file. A missing default ".env" is not an error; a missing explicit one is.
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_DSN, SECRET_KEY, ACCESS_TOKEN_TTL,
//	CORS_ORIGINS, PASSWORD_HASHER, LOG_LEVEL
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlag()
	if envFile == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		panic(err)
	}

	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("GRPC_ADDR"); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("PASSWORD_HASHER"); ok {
		config.PasswordHasher = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
}

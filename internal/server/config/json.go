package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/loveletters/internal/flagx"
	"github.com/dmitrijs2005/loveletters/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept "24h"-style strings or integer nanoseconds.
// Only fields present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	CORSOrigins                 []string        `json:"cors_origins"`
	PasswordHasher              *string         `json:"password_hasher"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Nothing
// happens when the flag is absent. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.PasswordHasher != nil {
		config.PasswordHasher = *c.PasswordHasher
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}

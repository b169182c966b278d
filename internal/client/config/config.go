// Package config loads runtime settings for the LoveLetters CLI.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional JSON file (-c or -config), then command-line flags.
//
//	-a string   base URL of the HTTP API
//	-f string   path of the local session database
//	-i int      request timeout (seconds)
package config

import "time"

type Config struct {
	ServerURL      string
	SessionFile    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults suitable for a local server.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8001"
	c.SessionFile = "loveletters.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, JSON and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

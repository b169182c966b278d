package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/loveletters/internal/flagx"
	"github.com/dmitrijs2005/loveletters/internal/timex"
)

// JsonConfig is the on-disk shape of the client config file. Missing keys
// leave the current values untouched.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	SessionFile    *string         `json:"session_file"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays values from the file named by -c/-config. It panics when
// the file cannot be read or parsed.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.SessionFile != nil {
		cfg.SessionFile = *jc.SessionFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

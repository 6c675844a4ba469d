package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kspdigital/sociallog-cli/internal/flagx"
	"github.com/kspdigital/sociallog-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_url"`
	APIToken        string         `json:"api_token"`
	IdentityBaseURL string         `json:"identity_url"`
	IdentityToken   string         `json:"identity_token"`
	AppID           string         `json:"app_id"`
	DatabasePath    string         `json:"db_path"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flag. When no flag is given the function is a no-op. Read or
// unmarshal errors panic; config is resolved before any I/O starts, so a
// broken file should stop the program immediately.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.APIToken != "" {
		cfg.APIToken = jc.APIToken
	}
	if jc.IdentityBaseURL != "" {
		cfg.IdentityBaseURL = jc.IdentityBaseURL
	}
	if jc.IdentityToken != "" {
		cfg.IdentityToken = jc.IdentityToken
	}
	if jc.AppID != "" {
		cfg.AppID = jc.AppID
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

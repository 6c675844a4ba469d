// Package config loads runtime settings for the sociallog CLI.
package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the sociallog CLI.
//
// Fields:
//   - APIBaseURL / APIToken: the posting backend endpoint and its shared token.
//   - IdentityBaseURL / IdentityToken: the identity-verification endpoint.
//   - AppID: application identifier sent on identity verification.
//   - DatabasePath: path of the local SQLite state cache.
//   - RequestTimeout: HTTP client timeout for remote calls.
type Config struct {
	APIBaseURL      string
	APIToken        string
	IdentityBaseURL string
	IdentityToken   string
	AppID           string
	DatabasePath    string
	RequestTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults. API URLs and tokens have
// no defaults on purpose: operations short-circuit when they are missing.
func (c *Config) LoadDefaults() {
	c.AppID = "ksp-sociallog"
	c.DatabasePath = "sociallog.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a .env file (if present), a JSON file (if given via -c/-config), environment
// variables, and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	// .env keys become regular env vars; existing env always wins.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

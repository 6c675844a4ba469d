package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/kspdigital/sociallog-cli/internal/flagx"
)

// parseEnv overlays cfg with values from environment variables. Empty
// variables are ignored so earlier layers survive.
func parseEnv(cfg *Config) {
	if v := os.Getenv("SOCIALLOG_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SOCIALLOG_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("SOCIALLOG_IDENTITY_URL"); v != "" {
		cfg.IdentityBaseURL = v
	}
	if v := os.Getenv("SOCIALLOG_IDENTITY_TOKEN"); v != "" {
		cfg.IdentityToken = v
	}
	if v := os.Getenv("SOCIALLOG_APP_ID"); v != "" {
		cfg.AppID = v
	}
	if v := os.Getenv("SOCIALLOG_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SOCIALLOG_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   posting backend URL
//	-t string   posting backend token
//	-u string   identity endpoint URL
//	-k string   identity endpoint token
//	-d string   local database path
//	-i int      request timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-u", "-k", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "posting backend URL")
	fs.StringVar(&cfg.APIToken, "t", cfg.APIToken, "posting backend token")
	fs.StringVar(&cfg.IdentityBaseURL, "u", cfg.IdentityBaseURL, "identity endpoint URL")
	fs.StringVar(&cfg.IdentityToken, "k", cfg.IdentityToken, "identity endpoint token")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

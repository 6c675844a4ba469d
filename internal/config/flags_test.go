package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "https://api.example", "-t", "tok",
			"-u", "https://id.example", "-k", "idtok",
			"-d", "local.db", "-i", "10",
		},
			expected: &Config{
				APIBaseURL:      "https://api.example",
				APIToken:        "tok",
				IdentityBaseURL: "https://id.example",
				IdentityToken:   "idtok",
				DatabasePath:    "local.db",
				RequestTimeout:  10 * time.Second,
			}},
		{name: "unknown flags filtered out", args: []string{"cmd",
			"-a", "https://api.example", "-test.v", "-other", "x",
		},
			expected: &Config{
				APIBaseURL: "https://api.example",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SOCIALLOG_URL", "https://api.example")
	t.Setenv("SOCIALLOG_API_TOKEN", "tok")
	t.Setenv("SOCIALLOG_IDENTITY_URL", "https://id.example")
	t.Setenv("SOCIALLOG_IDENTITY_TOKEN", "idtok")
	t.Setenv("SOCIALLOG_APP_ID", "sociallog-test")
	t.Setenv("SOCIALLOG_DB_PATH", "env.db")
	t.Setenv("SOCIALLOG_REQUEST_TIMEOUT", "15")

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "https://api.example", cfg.APIBaseURL)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, "https://id.example", cfg.IdentityBaseURL)
	assert.Equal(t, "idtok", cfg.IdentityToken)
	assert.Equal(t, "sociallog-test", cfg.AppID)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_EmptyAndInvalidIgnored(t *testing.T) {
	t.Setenv("SOCIALLOG_URL", "")
	t.Setenv("SOCIALLOG_REQUEST_TIMEOUT", "not-a-number")

	cfg := &Config{APIBaseURL: "keep", RequestTimeout: 30 * time.Second}
	parseEnv(cfg)

	assert.Equal(t, "keep", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		expected    Config
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "https://costs.example.com", "-d", "cache.db", "-t", "30"},
			expected: Config{
				ServerURL:      "https://costs.example.com",
				CacheDSN:       "cache.db",
				RequestTimeout: 30 * time.Second,
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"cmd", "-test.v", "-a", "https://costs.example.com"},
			expected: Config{
				ServerURL:      "https://costs.example.com",
				RequestTimeout: 0,
			},
		},
		{
			name:        "non-numeric timeout",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Equal(t, tt.expected.ServerURL, cfg.ServerURL)
			assert.Equal(t, tt.expected.CacheDSN, cfg.CacheDSN)
			assert.Equal(t, tt.expected.RequestTimeout, cfg.RequestTimeout)
		})
	}
}

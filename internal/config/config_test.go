package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
listen_addr: ":8080"
shutdown_timeout: 10s
asset_a: "0x00000000000000000000000000000000000000aa"
asset_b: "0x00000000000000000000000000000000000000bb"
`)

	cfg := Load(path)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 10*time.Second, cfg.GraceTimeout)
	// defaults fill the rest.
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		AssetA: "0x00000000000000000000000000000000000000aa",
		AssetB: "0x00000000000000000000000000000000000000bb",
	}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name string
		mod  func(c *Config)
	}{
		{"missing asset_a", func(c *Config) { c.AssetA = "" }},
		{"bad hex", func(c *Config) { c.AssetB = "0x123" }},
		{"zero address", func(c *Config) { c.AssetA = "0x0000000000000000000000000000000000000000" }},
		{"same asset", func(c *Config) { c.AssetB = c.AssetA }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mod(&cfg)
			require.Error(t, Validate(cfg))
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("ALCHEMY_API_KEY", "")
		cfg, err := LoadConfig(writeConfig(t, "logging:\n  level: debug\n"))
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "ALCHEMY_API_KEY", cfg.Alchemy.APIKeyEnv)
		assert.Empty(t, cfg.Alchemy.APIKey)
		assert.EqualValues(t, 30000, cfg.Alchemy.RequestTimeoutMillis)
		assert.Equal(t, 100, cfg.Alchemy.PageSize)
		assert.EqualValues(t, 500, cfg.Alchemy.PageDelayMillis)
		assert.Equal(t, 3, cfg.Fetch.MaxConcurrentPairs)
		assert.Equal(t, []string{"eth-mainnet"}, cfg.Fetch.DefaultChains)
		assert.Equal(t, RateLimitScopeChain, cfg.Fetch.RateLimit.Scope)
		assert.Equal(t, "/placeholder.svg?height=400&width=400&text=", cfg.Normalizer.PlaceholderBaseURL)
	})

	t.Run("environment overrides file api key", func(t *testing.T) {
		t.Setenv("MY_KEY", "from-env")
		cfg, err := LoadConfig(writeConfig(t, "alchemy:\n  apiKey: from-file\n  apiKeyEnv: MY_KEY\n"))
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Alchemy.APIKey)
	})

	t.Run("file api key used when env unset", func(t *testing.T) {
		t.Setenv("ALCHEMY_API_KEY", "")
		cfg, err := LoadConfig(writeConfig(t, "alchemy:\n  apiKey: from-file\n"))
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Alchemy.APIKey)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
fetch:
  maxConcurrentPairs: 1
  defaultChains: ["base-mainnet", "arb-mainnet"]
  rateLimit:
    scope: global
    requestsPerSecond: 2
    burst: 4
`))
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Fetch.MaxConcurrentPairs)
		assert.Equal(t, []string{"base-mainnet", "arb-mainnet"}, cfg.Fetch.DefaultChains)
		assert.Equal(t, RateLimitScopeGlobal, cfg.Fetch.RateLimit.Scope)
		assert.Equal(t, 2.0, cfg.Fetch.RateLimit.RequestsPerSecond)
		assert.Equal(t, 4, cfg.Fetch.RateLimit.Burst)
	})

	t.Run("rejects unknown rate limit scope", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "fetch:\n  rateLimit:\n    scope: per-wallet\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "per-wallet")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", "k")
	cfg := Default()
	assert.Equal(t, "k", cfg.Alchemy.APIKey)
	assert.Equal(t, "data/wallets.txt", cfg.WalletFile)
}

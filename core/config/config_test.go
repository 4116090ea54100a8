package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "file", cfg.Store.Driver)
		assert.Equal(t, ".store.json", cfg.Store.Path)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		assert.Equal(t, 100, cfg.OpenAI.PageLimit)
		assert.Equal(t, "https://api.anthropic.com/v1/organizations", cfg.Anthropic.BaseURL)
		assert.Equal(t, "2023-06-01", cfg.Anthropic.Version)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("OPENAI_ADMIN_KEY", "sk-admin-env")
		t.Setenv("STORE_DRIVER", "database")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "sk-admin-env", cfg.OpenAI.AdminKey)
		assert.Equal(t, "database", cfg.Store.Driver)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("DotEnvOverrides", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("ANTHROPIC_ADMIN_KEY", "from-env")
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ANTHROPIC_ADMIN_KEY=from-dotenv\nSERVER_PORT=9090\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("SERVER_PORT") })

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", cfg.Anthropic.AdminKey)
		assert.Equal(t, "9090", cfg.Server.Port)
	})
}

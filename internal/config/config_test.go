package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PAGSMILE_APP_ID", "app-123")
	t.Setenv("PAGSMILE_SECURITY_KEY", "sec-key")
	t.Setenv("PAGSMILE_PUBLIC_KEY", "pub-key")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PAGSMILE_ENVIRONMENT", "prod")
		t.Setenv("PAGSMILE_NOTIFY_URL", "https://shop.example.com/api/webhook/payment")
		t.Setenv("PAGSMILE_RETURN_URL", "https://shop.example.com/success")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "app-123", cfg.AppID)
		assert.Equal(t, "sec-key", cfg.SecurityKey)
		assert.Equal(t, "pub-key", cfg.PublicKey)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "https://shop.example.com/api/webhook/payment", cfg.NotifyURL)
		assert.Equal(t, "https://shop.example.com/success", cfg.ReturnURL)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
	})

	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PAGSMILE_ENVIRONMENT", "")
		t.Setenv("PAGSMILE_NOTIFY_URL", "")
		t.Setenv("PAGSMILE_RETURN_URL", "")
		t.Setenv("APP_PORT", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, EnvSandbox, cfg.Environment)
		assert.Equal(t, "http://localhost:3000/api/webhook/payment", cfg.NotifyURL)
		assert.Equal(t, "http://localhost:3000/success", cfg.ReturnURL)
		assert.Equal(t, "3000", cfg.AppPort)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		t.Setenv("PAGSMILE_APP_ID", "app-123")
		t.Setenv("PAGSMILE_SECURITY_KEY", "")
		t.Setenv("PAGSMILE_PUBLIC_KEY", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PAGSMILE_SECURITY_KEY")
		assert.Contains(t, err.Error(), "PAGSMILE_PUBLIC_KEY")
		assert.NotContains(t, err.Error(), "PAGSMILE_APP_ID,")
	})

	t.Run("InvalidEnvironment", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PAGSMILE_ENVIRONMENT", "staging")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid PAGSMILE_ENVIRONMENT")
	})
}

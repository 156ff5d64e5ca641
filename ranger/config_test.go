package ranger_test

import (
	"testing"
	"time"

	"github.com/poorify/poorify"
	"github.com/poorify/poorify/logger"
	"github.com/poorify/poorify/ranger"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"BASE_URL", "CORS_ORIGINS", "ENVIRONMENT", "GOOGLE_CALLBACK_URL", "GOOGLE_CLIENT_ID",
	"GOOGLE_CLIENT_SECRET", "HOST", "LOG_LEVEL", "OAUTH_STATE_KEY", "PORT", "REDIS_PASSWORD",
	"REDIS_URL", "SENTRY_DSN", "SERVER_IDLE_TIMEOUT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
	"SESSION_AUTH_KEY", "SESSION_ENCRYPTION_KEY", "SESSION_MAX_AGE", "SESSION_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	cfg := ranger.NewConfig()

	// Assert
	require.Empty(t, cfg.Env)
	require.Equal(t, "0.0.0.0", cfg.Host)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "0.0.0.0:5000", cfg.Addr())
	require.Equal(t, "http://localhost:5000/", cfg.BaseURL.String())
	require.Equal(t, "http://localhost:5000/auth/google/callback", cfg.CallbackURL())
	require.Equal(t, logger.LogLevelInfo, cfg.LogLevel)
	require.Equal(t, "poorify", cfg.SessionName)
	require.Equal(t, 604800, cfg.SessionMaxAge)
	require.Empty(t, cfg.CORSOrigins)
	require.Equal(t, ranger.DefaultServerReadTimeout, cfg.ReadTimeout)
	require.Equal(t, ranger.DefaultServerWriteTimeout, cfg.WriteTimeout)
	require.Equal(t, ranger.DefaultServerIdleTimeout, cfg.IdleTimeout)
}

func TestNewConfigFromEnv(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", ":8080")
	t.Setenv("BASE_URL", "https://poorify.example.com")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://www.example.com")
	t.Setenv("GOOGLE_CALLBACK_URL", "https://poorify.example.com/cb")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("SERVER_READ_TIMEOUT", "1s")

	// Act
	cfg := ranger.NewConfig()

	// Assert
	require.Equal(t, poorify.Production, cfg.Env)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, "https://poorify.example.com/cb", cfg.CallbackURL())
	require.Equal(t, []string{"https://app.example.com", "https://www.example.com"}, cfg.CORSOrigins)
	require.Equal(t, logger.LogLevelWarn, cfg.LogLevel)
	require.Equal(t, time.Second, cfg.ReadTimeout)
}

func TestConfigCallbackURL(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("BASE_URL", "https://poorify.example.com")

	// Act
	actual := ranger.NewConfig().CallbackURL()

	// Assert
	require.Equal(t, "https://poorify.example.com/auth/google/callback", actual)
}

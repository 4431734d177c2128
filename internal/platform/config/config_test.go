package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := loadFromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "2000", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "*", cfg.ClientURL)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.True(t, cfg.StatsCacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
	assert.True(t, cfg.RunMigrations)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/budget.db")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("STATS_CACHE_ENABLED", "false")
	t.Setenv("STATS_CACHE_TTL", "30s")

	cfg, err := loadFromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/budget.db", cfg.SQLitePath)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.False(t, cfg.StatsCacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_EXPIRY_DURATION", "soon")

	cfg, err := loadFromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("PGSQL_URL", "")
		_, err := loadFromViper(viper.New())
		assert.ErrorContains(t, err, "PGSQL_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		_, err := loadFromViper(viper.New())
		assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
	})

	t.Run("default secret in production", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := loadFromViper(viper.New())
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}

package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

const (
	defaultJWTSecret     = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry     = time.Hour
	defaultStatsCacheTTL = 5 * time.Minute
)

// Config holds application configuration.
type Config struct {
	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	RunMigrations bool
	EnableDBCheck bool

	Port         string
	IsProduction bool
	LogLevel     slog.Level
	ClientURL    string // Allowed CORS origin(s), comma separated
	RateLimit    string // ulule/limiter formatted rate, e.g. "100-M"

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	StatsCacheEnabled bool
	StatsCacheTTL     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	return loadFromViper(viper.New())
}

func loadFromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/budget.db")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("PORT", "2000")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CLIENT_URL", "*")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "budget-tracker")
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("STATS_CACHE_ENABLED", true)
	v.SetDefault("STATS_CACHE_TTL", defaultStatsCacheTTL.String())

	v.AutomaticEnv()

	cfg := &Config{
		StoreDriver:       strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		SQLitePath:        v.GetString("SQLITE_PATH"),
		RunMigrations:     v.GetBool("RUN_MIGRATIONS"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		ClientURL:         v.GetString("CLIENT_URL"),
		RateLimit:         v.GetString("RATE_LIMIT"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		StatsCacheEnabled: v.GetBool("STATS_CACHE_ENABLED"),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER is %q", StoreDriverSQLite)
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER is memory. Transactions are lost on restart.")
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (expected %s, %s or %s)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverSQLite, StoreDriverMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "2000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = parseDurationOrDefault(v.GetString("JWT_EXPIRY_DURATION"), "JWT_EXPIRY_DURATION", defaultJWTExpiry)
	cfg.StatsCacheTTL = parseDurationOrDefault(v.GetString("STATS_CACHE_TTL"), "STATS_CACHE_TTL", defaultStatsCacheTTL)

	return cfg, nil
}

func parseDurationOrDefault(raw string, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

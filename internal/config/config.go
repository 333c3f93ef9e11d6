package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	Sync        SyncConfig
	Insight     InsightConfig
	RateLimit   RateLimitConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	ConnectionString string
	MigrationsPath   string
	MaxOpenConns     int
	MaxIdleConns     int
}

// SyncConfig holds state synchronization configuration
type SyncConfig struct {
	// WatchInterval is how often the store is polled for changes written
	// by another process.
	WatchInterval time.Duration
}

// InsightConfig holds the insight generator configuration
type InsightConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// RateLimitConfig holds rate limiting configuration for the insight routes
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_CONNECTION_STRING", "./data/station.db")
	viper.SetDefault("DB_MIGRATIONS_PATH", "./migrations")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 25)
	viper.SetDefault("SYNC_WATCH_INTERVAL", "2s")
	viper.SetDefault("INSIGHT_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("INSIGHT_MODEL", "gemini-2.0-flash")
	viper.SetDefault("INSIGHT_TIMEOUT", "30s")
	viper.SetDefault("INSIGHT_RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("INSIGHT_RATE_LIMIT_BURST", 3)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Database: DatabaseConfig{
			ConnectionString: viper.GetString("DB_CONNECTION_STRING"),
			MigrationsPath:   viper.GetString("DB_MIGRATIONS_PATH"),
			MaxOpenConns:     viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     viper.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Sync: SyncConfig{
			WatchInterval: viper.GetDuration("SYNC_WATCH_INTERVAL"),
		},
		Insight: InsightConfig{
			BaseURL: viper.GetString("INSIGHT_BASE_URL"),
			APIKey:  viper.GetString("INSIGHT_API_KEY"),
			Model:   viper.GetString("INSIGHT_MODEL"),
			Timeout: viper.GetDuration("INSIGHT_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("INSIGHT_RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("INSIGHT_RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

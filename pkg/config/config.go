package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Application settings
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Dashboard DashboardConfig
	Export    ExportConfig
}

// Server settings
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
}

// Dashboard data settings
type DashboardConfig struct {
	WindowDays      int
	CampaignCount   int
	PageSize        int
	RefreshInterval time.Duration
	InitialDelay    time.Duration
}

// Export settings
type ExportConfig struct {
	Theme string
}

// Logging settings
type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	// Optional .env for local runs; real environments set variables directly.
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 100),
		},
		Dashboard: DashboardConfig{
			WindowDays:      getIntEnv("WINDOW_DAYS", 30),
			CampaignCount:   getIntEnv("CAMPAIGN_COUNT", 50),
			PageSize:        getIntEnv("PAGE_SIZE", 10),
			RefreshInterval: getDurationEnv("REFRESH_INTERVAL", "30s"),
			InitialDelay:    getDurationEnv("INITIAL_DELAY", "1500ms"),
		},
		Export: ExportConfig{
			Theme: getEnv("THEME", "dark"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

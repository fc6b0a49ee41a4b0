package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sjperalta/fintera-invest/internal/models"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Storage (CLI exports)
	StoragePath string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Rate limiting, requests per minute per client IP (0 disables)
	RateLimitPerMinute int

	// Result cache
	RedisAddr       string
	CacheTTLMinutes int

	// Service limits
	MaxSweepRuns    int
	MaxHoldingYears int
	MaxLoanYears    int

	DefaultCurrency string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		CacheTTLMinutes:    getEnvAsInt("CACHE_TTL_MINUTES", 30),
		MaxSweepRuns:       getEnvAsInt("MAX_SWEEP_RUNS", 50),
		MaxHoldingYears:    getEnvAsInt("MAX_HOLDING_YEARS", 100),
		MaxLoanYears:       getEnvAsInt("MAX_LOAN_YEARS", 50),
		DefaultCurrency:    strings.ToUpper(getEnv("DEFAULT_CURRENCY", models.CurrencyINR)),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
	}

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WORKER_COUNT must be at least 1")
	}
	if cfg.MaxSweepRuns < 1 {
		return nil, fmt.Errorf("MAX_SWEEP_RUNS must be at least 1")
	}
	if cfg.MaxHoldingYears < 1 || cfg.MaxLoanYears < 1 {
		return nil, fmt.Errorf("MAX_HOLDING_YEARS and MAX_LOAN_YEARS must be at least 1")
	}
	if _, ok := models.LookupCurrency(cfg.DefaultCurrency); !ok {
		return nil, fmt.Errorf("DEFAULT_CURRENCY %q is not supported", cfg.DefaultCurrency)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tripapi/internal/utils"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Database *DatabaseConfig `yaml:"database"`
	Redis    *RedisConfig    `yaml:"redis"`
	Trip     *TripConfig     `yaml:"trip"`
	Search   *SearchConfig   `yaml:"search"`
	Security *SecurityConfig `yaml:"security"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	BaseURL     string `yaml:"base_url"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	Timezone    string `yaml:"timezone"`
	Currency    string `yaml:"currency"`
}

// TripConfig tunes the recurrence window and how plans spell "everyday".
type TripConfig struct {
	WindowDays      int           `yaml:"window_days"`
	EverydayKeyword string        `yaml:"everyday_keyword"`
	StabilizeEvery  time.Duration `yaml:"stabilize_every"`
}

// SearchConfig tunes the trip search ranking and cache.
type SearchConfig struct {
	RankThreshold float64       `yaml:"rank_threshold"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

type SecurityConfig struct {
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	TrustedProxies     []string `yaml:"trusted_proxies"`
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		Trip:     loadTripConfig(),
		Search:   loadSearchConfig(),
		Security: loadSecurityConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", utils.AppName),
		Version:     getEnv("APP_VERSION", utils.AppVersion),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", "localhost"),
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		Currency:    getEnv("APP_CURRENCY", "NGN"),
	}
}

func loadTripConfig() *TripConfig {
	return &TripConfig{
		WindowDays:      getEnvAsInt("TRIP_WINDOW_DAYS", utils.DefaultTripWindowDays),
		EverydayKeyword: getEnv("TRIP_EVERYDAY_KEYWORD", utils.RecurringEveryday),
		StabilizeEvery:  getEnvAsDuration("TRIP_STABILIZE_EVERY", 6*time.Hour),
	}
}

func loadSearchConfig() *SearchConfig {
	return &SearchConfig{
		RankThreshold: getEnvAsFloat64("SEARCH_RANK_THRESHOLD", utils.DefaultRankThreshold),
		CacheTTL:      getEnvAsDuration("SEARCH_CACHE_TTL", utils.DefaultSearchCacheTTL),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}

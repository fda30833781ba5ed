package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DevMode bool
	DataDir string
	Server  ServerConfig
	Log     LogConfig
	Cache   CacheConfig
	Limits  LimitsConfig
	Stats   StatsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	GinMode         string
	CorsOrigins     []string
	ShutdownTimeout time.Duration
	AnalyzeTimeout  time.Duration
}

// LogConfig selects log level and output format
type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig bounds the competitor cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
	// Seed of 0 seeds the random source from the clock
	Seed int64
}

// LimitsConfig holds per-client rate limits
type LimitsConfig struct {
	RPS   float64
	Burst int
}

// StatsConfig controls statistics retention
type StatsConfig struct {
	RetainMonths int
}

// LoadEnv reads .env.development, falling back to .env. It reports whether
// a file was found.
func LoadEnv() bool {
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			return false
		}
	}
	return true
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	cfg := Config{
		DevMode: getEnvAsBool("DEV_MODE", false),
		DataDir: getEnv("DATA_DIR", "./data"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "8082"),
			GinMode:         getEnv("GIN_MODE", "release"),
			CorsOrigins:     getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			AnalyzeTimeout:  getEnvAsDuration("ANALYZE_TIMEOUT", 5*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("CACHE_SIZE", 1000),
			TTL:  getEnvAsDuration("CACHE_TTL", 30*time.Minute),
			Seed: int64(getEnvAsInt("RANDOM_SEED", 0)),
		},
		Limits: LimitsConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 2),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 5),
		},
		Stats: StatsConfig{
			RetainMonths: getEnvAsInt("STATS_RETAIN_MONTHS", 2),
		},
	}

	return cfg, validate(cfg)
}

// validate checks if config is valid
func validate(cfg Config) error {
	var errs []error
	if strings.TrimSpace(cfg.Server.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if cfg.Cache.Size <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_SIZE must be positive, got %d", cfg.Cache.Size))
	}
	if cfg.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", cfg.Cache.TTL))
	}
	if cfg.Limits.RPS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", cfg.Limits.RPS))
	}
	if cfg.Limits.Burst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", cfg.Limits.Burst))
	}
	if cfg.Stats.RetainMonths < 1 {
		errs = append(errs, fmt.Errorf("STATS_RETAIN_MONTHS must be at least 1, got %d", cfg.Stats.RetainMonths))
	}
	return errors.Join(errs...)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

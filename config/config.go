package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// DefaultPolicyRate is the canonical monthly policy rate (4.5% per month).
const DefaultPolicyRate = 0.045

// Audit stores.
const (
	AuditStoreSQLite = "sqlite"
	AuditStoreMemory = "memory"
)

type DatabaseConfig struct {
	Path       string
	SeedPath   string
	AuditStore string
}

type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type Config struct {
	HTTPPort   int
	PolicyRate float64
	DB         DatabaseConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

func Load() Config {
	return Config{
		HTTPPort:   getEnvInt("HTTP_PORT", 8080),
		PolicyRate: getEnvFloat("LOAN_MONTHLY_RATE", DefaultPolicyRate),
		DB: DatabaseConfig{
			Path:       getEnv("DB_PATH", "bank.db"),
			SeedPath:   getEnv("SEED_PATH", ""),
			AuditStore: getEnv("AUDIT_STORE", AuditStoreSQLite),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			TTL:       time.Duration(getEnvInt("PROFILE_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Capacity: getEnvInt("RATE_LIMIT_CAPACITY", 5),
			Window:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func (c Config) Validate() error {
	var errs []error
	if math.IsNaN(c.PolicyRate) || math.IsInf(c.PolicyRate, 0) || c.PolicyRate < 0 {
		errs = append(errs, fmt.Errorf("LOAN_MONTHLY_RATE must be a non-negative number, got %v", c.PolicyRate))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.DB.Path == "" {
		errs = append(errs, errors.New("DB_PATH is required"))
	}
	if c.DB.AuditStore != AuditStoreSQLite && c.DB.AuditStore != AuditStoreMemory {
		errs = append(errs, fmt.Errorf("AUDIT_STORE must be %q or %q, got %q", AuditStoreSQLite, AuditStoreMemory, c.DB.AuditStore))
	}
	if c.RateLimit.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_CAPACITY must be positive, got %d", c.RateLimit.Capacity))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW_SECONDS must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// KV backends
const (
	KVBackendRedis    = "redis"
	KVBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis configuration (expiring key-value store)
	Redis RedisConfig

	// Comment admission and validation settings
	Comments CommentsConfig

	// Per-address burst limiting
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// CORSAllowedOrigin is the single frontend origin allowed on public routes
	CORSAllowedOrigin string
	// TrustedPlatform names the connection-level header carrying the client address
	TrustedPlatform string
	MigrationsPath  string
	AutoMigrate     bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CommentsConfig holds token, cooldown and payload limits
type CommentsConfig struct {
	KVBackend       string
	KVSweepInterval time.Duration
	TokenTTL        time.Duration
	CooldownTTL     time.Duration
	MaxAuthorLength int
	MaxBodyLength   int
}

// RateLimitConfig holds settings of the per-address burst limiter
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			ReadTimeout:       getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:1313"),
			TrustedPlatform:   getEnv("TRUSTED_PLATFORM", "CF-Connecting-IP"),
			MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
			AutoMigrate:       getBoolEnv("AUTO_MIGRATE", true),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "page_comments"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Comments: CommentsConfig{
			KVBackend:       getEnv("KV_BACKEND", KVBackendRedis),
			KVSweepInterval: getDurationEnv("KV_SWEEP_INTERVAL", time.Minute),
			TokenTTL:        getDurationEnv("TOKEN_TTL", 90*time.Second),
			CooldownTTL:     getDurationEnv("COOLDOWN_TTL", 300*time.Second),
			MaxAuthorLength: getIntEnv("MAX_AUTHOR_LENGTH", 32),
			MaxBodyLength:   getIntEnv("MAX_BODY_LENGTH", 512),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolEnv("RATE_LIMIT_ENABLED", true),
			RPS:     getFloatEnv("RATE_LIMIT_RPS", 2),
			Burst:   getIntEnv("RATE_LIMIT_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	switch c.Comments.KVBackend {
	case KVBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when KV_BACKEND=redis")
		}
	case KVBackendPostgres:
	default:
		return fmt.Errorf("KV_BACKEND must be one of: redis, postgres (got %q)", c.Comments.KVBackend)
	}
	if c.Comments.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.Comments.CooldownTTL <= 0 {
		return fmt.Errorf("COOLDOWN_TTL must be positive")
	}
	if c.Comments.MaxAuthorLength <= 0 || c.Comments.MaxBodyLength <= 0 {
		return fmt.Errorf("MAX_AUTHOR_LENGTH and MAX_BODY_LENGTH must be positive")
	}
	if c.Server.CORSAllowedOrigin == "" {
		return fmt.Errorf("CORS_ALLOWED_ORIGIN is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

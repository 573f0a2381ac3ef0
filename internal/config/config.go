// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// EnvProduction значение APP_ENV для production
const EnvProduction = "production"

// Config holds all runtime configuration values of the server
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	Env       string
	LogLevel  slog.Level
}

// ServerConfig HTTP сервер
type ServerConfig struct {
	Addr            string
	ClientOrigin    string
	ShutdownTimeout time.Duration
}

// DatabaseConfig выбор СУБД и строка подключения
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// SessionConfig подпись и срок жизни токена сессии
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	BcryptCost int
}

// RateLimitConfig лимит запросов к auth endpoints на один IP.
// X-Forwarded-For и X-Real-IP учитываются только при TrustProxy.
type RateLimitConfig struct {
	Requests   int
	Window     time.Duration
	TrustProxy bool
}

// RedisConfig включает Redis-лимитер, если Addr не пустой
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AMQPConfig включает публикацию событий, если URL не пустой
type AMQPConfig struct {
	URL      string
	Exchange string
}

// ErrMissingSecret возвращается, если JWT_SECRET не задан
var ErrMissingSecret = errors.New("JWT_SECRET is required")

// LoadEnvFile loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration values from environment variables
func Load() (*Config, error) {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	sessionTTL, err := getDurationEnv("SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := getIntEnv("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid BCRYPT_COST %d: expected %d..%d", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	rlRequests, err := getIntEnv("RATE_LIMIT_REQUESTS", 20)
	if err != nil {
		return nil, err
	}
	if rlRequests <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS %d: must be positive", rlRequests)
	}
	trustProxy, err := getBoolEnv("TRUST_PROXY", false)
	if err != nil {
		return nil, err
	}
	rlWindow, err := getDurationEnv("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected sqlite, mysql or postgres", driver)
	}

	return &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: logLevel,
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":4000"),
			ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Driver: driver,
			DSN:    getEnv("DB_DSN", "stockkeeper.db"),
		},
		Session: SessionConfig{
			Secret:     secret,
			TTL:        sessionTTL,
			BcryptCost: bcryptCost,
		},
		RateLimit: RateLimitConfig{
			Requests:   rlRequests,
			Window:     rlWindow,
			TrustProxy: trustProxy,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "stockkeeper.items"),
		},
	}, nil
}

// IsProduction reports whether APP_ENV is "production"
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}

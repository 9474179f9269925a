// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	AppPort        string        `mapstructure:"APP_PORT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	DBDriver       string        `mapstructure:"DB_DRIVER"`
	DatabaseDSN    string        `mapstructure:"DATABASE_DSN"`
	DBLogLevel     string        `mapstructure:"DB_LOG_LEVEL"`
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	SessionSecret  string        `mapstructure:"SESSION_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	RabbitMQURL    string        `mapstructure:"RABBITMQ_URL"`
	BcryptCost     int           `mapstructure:"BCRYPT_COST"`
}

var keys = map[string]interface{}{
	"APP_PORT":        ":8080",
	"LOG_LEVEL":       "info",
	"DB_DRIVER":       "sqlite",
	"DATABASE_DSN":    "feedback.db",
	"DB_LOG_LEVEL":    "warn",
	"SESSION_BACKEND": "server",
	"SESSION_SECRET":  "Cats_are_cool!",
	"SESSION_TTL":     "24h",
	"REDIS_URL":       "",
	"RABBITMQ_URL":    "",
	"BCRYPT_COST":     bcrypt.DefaultCost,
}

// Load reads an optional .env file, then environment variables over defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, def := range keys {
		v.SetDefault(key, def)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case "server", "token":
	default:
		return fmt.Errorf("invalid SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionBackend == "token" && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required for token sessions")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

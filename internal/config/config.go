// Package config loads application configuration from environment
// variables, after an optional .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field, or field of
// a nested group, corresponds to an environment variable.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Queue     QueueConfig
}

// DatabaseConfig describes the MySQL connection.
type DatabaseConfig struct {
	User         string `env:"DB_USER,notEmpty"`
	Pass         string `env:"DB_PASS"`
	Host         string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port         string `env:"DB_PORT" envDefault:"3306"`
	Name         string `env:"DB_NAME,notEmpty"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	Migrate      bool   `env:"DB_MIGRATE" envDefault:"true"`
}

// QueueConfig describes the RabbitMQ connection used for listing events.
// An empty URL disables both publishing and consuming.
type QueueConfig struct {
	URL             string `env:"RABBITMQ_URL"`
	Name            string `env:"LISTING_QUEUE" envDefault:"listing.events"`
	ConsumerEnabled bool   `env:"LISTING_CONSUMER_ENABLED" envDefault:"true"`
	LogFile         string `env:"LISTING_LOG_FILE" envDefault:"logs/listing.log"`
}

// Load reads .env (when present) and the process environment into a
// Config.  Missing or empty required variables are reported as an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.RateLimit.normalize()
	cfg.Cache.normalize()
	return cfg, nil
}

// Package config loads runtime configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const defaultAddr = ":5000"

// Config centralises runtime configuration.
type Config struct {
	AppPort          string
	AppEnv           string
	StorageDriver    string
	MongoURI         string
	MongoDatabase    string
	MongoCollection  string
	DatabaseDSN      string
	RabbitMQURL      string
	ConsumeEvents    bool
	CORSAllowOrigins string
	ShutdownTimeout  time.Duration
}

// New returns a viper instance with the service defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", "")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORAGE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "catalog")
	v.SetDefault("MONGO_COLLECTION", "products")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_CONSUME_EVENTS", false)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("PORT", "")
	v.AutomaticEnv()
	return v
}

// ReadEnvFile merges key=value pairs from path into v. A missing file is not an error.
func ReadEnvFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	log.Printf("Loaded configuration from %s", path)
	return nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:          listenAddr(v),
		AppEnv:           v.GetString("APP_ENV"),
		StorageDriver:    strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		MongoCollection:  v.GetString("MONGO_COLLECTION"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		ConsumeEvents:    v.GetBool("RABBITMQ_CONSUME_EVENTS"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	switch cfg.StorageDriver {
	case DriverMongo:
		if cfg.MongoURI == "" || cfg.MongoDatabase == "" || cfg.MongoCollection == "" {
			return Config{}, fmt.Errorf("MONGO_URI, MONGO_DATABASE and MONGO_COLLECTION are required for the %s driver", DriverMongo)
		}
	case DriverPostgres, DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return Config{}, fmt.Errorf("DATABASE_DSN is required for the %s driver", cfg.StorageDriver)
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}

// EventsEnabled reports whether product events should be published.
func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// listenAddr resolves the listen address from APP_PORT, then PORT, then the default.
// A bare port number gets a leading colon.
func listenAddr(v *viper.Viper) string {
	addr := strings.TrimSpace(v.GetString("APP_PORT"))
	if addr == "" {
		addr = strings.TrimSpace(v.GetString("PORT"))
	}
	if addr == "" {
		addr = defaultAddr
	}
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return addr
}

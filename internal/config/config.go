package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig describes the document store. URL and Name may both be empty;
// the API then runs with persistence reported as unavailable.
type DatabaseConfig struct {
	URL             string
	Name            string
	Timeout         time.Duration
	ConnectAttempts int
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// IsProduction reports whether gin should run in release mode.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 15)
	v.SetDefault("DATABASE_TIMEOUT", 10)
	v.SetDefault("DATABASE_CONNECT_ATTEMPTS", 3)
	v.SetDefault("LOG_LEVEL", "info")

	attempts := v.GetInt("DATABASE_CONNECT_ATTEMPTS")
	if attempts < 1 {
		attempts = 1
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("SERVER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			URL:             strings.TrimSpace(v.GetString("DATABASE_URL")),
			Name:            strings.TrimSpace(v.GetString("DATABASE_NAME")),
			Timeout:         time.Duration(v.GetInt("DATABASE_TIMEOUT")) * time.Second,
			ConnectAttempts: attempts,
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}

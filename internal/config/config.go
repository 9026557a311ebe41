// Package config provides application configuration with support for
// command-line flags, environment variables, and .env files.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/airatlasapp/airatlas-server/internal/source"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Source    SourceConfig
	Providers ProvidersConfig
	Server    ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds dataset storage configuration.
type DataConfig struct {
	// Dir is the root directory for generated JSON files (default: ./data).
	Dir string
}

// SourceConfig holds source-feed configuration.
type SourceConfig struct {
	FeedURL         string
	CountryNamesURL string
}

// ProvidersConfig holds enrichment-provider configuration.
type ProvidersConfig struct {
	AirportDBBaseURL string
	AirportDBAPIKey  string
	MetarBaseURL     string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// AdminToken protects the admin endpoints. Empty leaves them open,
	// which is only sensible in development.
	AdminToken string
}

// Load builds configuration with precedence: flags > environment variables >
// .env file > defaults. args is the command line without the program name.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("airatlas", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := fs.String("data-dir", "", "Root directory for generated JSON files")
	feedURL := fs.String("feed-url", "", "Airport-codes CSV feed URL")
	namesURL := fs.String("country-names-url", "", "Country display-name mapping URL")
	airportdbURL := fs.String("airportdb-url", "", "airportdb.io base URL")
	airportdbKey := fs.String("airportdb-api-key", "", "airportdb.io API key")
	metarURL := fs.String("metar-url", "", "aviationweather.gov base URL")
	port := fs.String("port", "", "HTTP server port")
	adminToken := fs.String("admin-token", "", "Bearer token for admin endpoints")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// .env, if present, fills any env vars not already set.
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: firstOf(*env, os.Getenv("AIRATLAS_ENV"), "development"),
		},
		Logger: LoggerConfig{
			Level: firstOf(*logLevel, os.Getenv("AIRATLAS_LOG_LEVEL"), "info"),
		},
		Data: DataConfig{
			Dir: firstOf(*dataDir, os.Getenv("AIRATLAS_DATA_DIR"), "data"),
		},
		Source: SourceConfig{
			FeedURL:         firstOf(*feedURL, os.Getenv("AIRATLAS_FEED_URL"), source.DefaultFeedURL),
			CountryNamesURL: firstOf(*namesURL, os.Getenv("AIRATLAS_COUNTRY_NAMES_URL"), source.DefaultNamesURL),
		},
		Providers: ProvidersConfig{
			AirportDBBaseURL: firstOf(*airportdbURL, os.Getenv("AIRATLAS_AIRPORTDB_URL")),
			AirportDBAPIKey:  firstOf(*airportdbKey, os.Getenv("AIRPORTDB_API_KEY")),
			MetarBaseURL:     firstOf(*metarURL, os.Getenv("AIRATLAS_METAR_URL")),
		},
		Server: ServerConfig{
			Port:         firstOf(*port, os.Getenv("AIRATLAS_PORT"), "8080"),
			ReadTimeout:  durationEnv("AIRATLAS_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: durationEnv("AIRATLAS_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  durationEnv("AIRATLAS_IDLE_TIMEOUT", 60*time.Second),
			AdminToken:   firstOf(*adminToken, os.Getenv("AIRATLAS_ADMIN_TOKEN")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment %q", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logger.Level)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if c.Source.FeedURL == "" {
		return fmt.Errorf("feed URL must not be empty")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	return nil
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// StoreDriver selects the entity store: "postgres" (default) or "memory".
	StoreDriver string

	// DatabaseURL is the Postgres connection string. Required when
	// StoreDriver is "postgres".
	DatabaseURL string

	// MigrateOnStart applies pending goose migrations at boot. Defaults to true.
	MigrateOnStart bool

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// WeatherAPIKey and CountryAPIKey authenticate the enrichment providers.
	// Either may be empty, in which case that part of the enrichment is skipped.
	WeatherAPIKey string
	CountryAPIKey string

	WeatherBaseURL string
	CountryBaseURL string

	// EnrichmentTimeout bounds each outbound enrichment call. Defaults to 5s.
	EnrichmentTimeout time.Duration
}

// Load reads an optional .env file from the working directory, then
// configuration from environment variables. Variables already set in the
// environment take precedence over the file.
// Returns an error listing every missing or malformed variable.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	var p parser
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrateOnStart:    p.bool("MIGRATE_ON_START", true),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes:      p.int64("MAX_BODY_BYTES", 1<<20),
		WeatherAPIKey:     os.Getenv("OW_API_KEY"),
		CountryAPIKey:     os.Getenv("CSC_API_KEY"),
		WeatherBaseURL:    getEnv("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		CountryBaseURL:    getEnv("COUNTRY_BASE_URL", "https://api.countrystatecity.in/v1"),
		EnrichmentTimeout: p.duration("ENRICHMENT_TIMEOUT", 5*time.Second),
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			p.missing = append(p.missing, "DATABASE_URL")
		}
	case DriverMemory:
	default:
		p.invalid = append(p.invalid, fmt.Sprintf("STORE_DRIVER=%q (want postgres or memory)", cfg.StoreDriver))
	}
	if cfg.MaxBodyBytes <= 0 {
		p.invalid = append(p.invalid, "MAX_BODY_BYTES must be positive")
	}
	if cfg.EnrichmentTimeout <= 0 {
		p.invalid = append(p.invalid, "ENRICHMENT_TIMEOUT must be positive")
	}

	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parser collects problems so Load can report all of them at once.
type parser struct {
	missing []string
	invalid []string
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q (want a boolean)", key, v))
		return fallback
	}
	return b
}

func (p *parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q (want an integer)", key, v))
		return fallback
	}
	return n
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.invalid = append(p.invalid, fmt.Sprintf("%s=%q (want a duration such as 5s)", key, v))
		return fallback
	}
	return d
}

func (p *parser) err() error {
	var msgs []string
	if len(p.missing) > 0 {
		msgs = append(msgs, "required environment variables not set: "+strings.Join(p.missing, ", "))
	}
	if len(p.invalid) > 0 {
		msgs = append(msgs, "invalid environment variables: "+strings.Join(p.invalid, "; "))
	}
	if len(msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(msgs, "; "))
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SlotTimezone is the IANA zone in which slot weekdays and match windows
	// are evaluated. Defaults to "UTC".
	SlotTimezone string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst configure the per-client limiter.
	// A zero RPS disables it. Defaults to 10 and 20.
	RateLimitRPS   float64
	RateLimitBurst int

	// MigrateOnStart applies pending goose migrations at boot. Defaults to true.
	MigrateOnStart bool

	// MeetingSweepSchedule is the cron spec on which ended meetings are marked
	// completed. Defaults to "@every 5m".
	MeetingSweepSchedule string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or any
// variable whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		CORSOrigins:          splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SlotTimezone:         getEnv("SLOT_TIMEZONE", "UTC"),
		MeetingSweepSchedule: getEnv("MEETING_SWEEP_SCHEDULE", "@every 5m"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var errs []error
	var err error
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 10); err != nil {
		errs = append(errs, err)
	}
	burst, err := getInt64("RATE_LIMIT_BURST", 20)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.RateLimitBurst = int(burst)
	if cfg.MigrateOnStart, err = getBool("MIGRATE_ON_START", true); err != nil {
		errs = append(errs, err)
	}
	if _, err := time.LoadLocation(cfg.SlotTimezone); err != nil {
		errs = append(errs, fmt.Errorf("SLOT_TIMEZONE: %w", err))
	}
	if _, err := cron.ParseStandard(cfg.MeetingSweepSchedule); err != nil {
		errs = append(errs, fmt.Errorf("MEETING_SWEEP_SCHEDULE: %w", err))
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// ClientConfig holds the settings of the availctl command.
type ClientConfig struct {
	// APIURL is the base URL of the API. Defaults to "http://localhost:8080".
	APIURL string

	// UserID identifies the candidate to the API. Required.
	UserID string

	// SlotTimezone must match the server's so local validation agrees with it.
	// Defaults to "UTC".
	SlotTimezone string

	// RPS paces outgoing requests. Defaults to 5.
	RPS float64

	// LogLevel controls the minimum log level. Defaults to "warn".
	LogLevel string
}

// LoadClient reads the availctl configuration from environment variables.
func LoadClient() (ClientConfig, error) {
	cfg := ClientConfig{
		APIURL:       strings.TrimRight(getEnv("API_URL", "http://localhost:8080"), "/"),
		UserID:       os.Getenv("USER_ID"),
		SlotTimezone: getEnv("SLOT_TIMEZONE", "UTC"),
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
	}
	if cfg.UserID == "" {
		return ClientConfig{}, fmt.Errorf("required environment variables not set: USER_ID")
	}

	var err error
	if cfg.RPS, err = getFloat("CLIENT_RPS", 5); err != nil {
		return ClientConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logger   LoggerConfig
	CORS     CORSConfig
	Sources  SourcesConfig
	Features FeatureFlags
	External ExternalConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL            string        // Required
	MigrationsPath string        // Default: "migrations"
	HealthTimeout  time.Duration // Default: 5s
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        // Default: "127.0.0.1"
	Port            int           // Default: 8080
	ShutdownTimeout time.Duration // Default: 30s
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // Default: "info" (trace, debug, info, warn, error, fatal, panic)
	Environment string // production|development|staging|test (affects format)
}

// CORSConfig holds CORS middleware settings
type CORSConfig struct {
	AllowAll    bool   // Default: false
	FrontendURL string // Used when AllowAll=false
}

// SourcesConfig holds per-source ingestion settings. Thresholds default to
// the values the loaders were tuned with; raising a threshold trades recall
// for precision on that source only.
type SourcesConfig struct {
	VancouverFoodiesBaseURL   string        // Default: "https://vancouverfoodies.ca"
	VancouverFoodiesThreshold float64       // Default: 0.86
	GoogleMapsHTMLPath        string        // Default: "halalList.html"
	GoogleMapsThreshold       float64       // Default: 0.88
	FetchTimeout              time.Duration // Default: 60s
}

// FeatureFlags holds feature toggles
type FeatureFlags struct {
	EnableScheduler bool // Default: false; nightly ingest runs
}

// ExternalConfig holds credentials
type ExternalConfig struct {
	APIKey string // Required outside development
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Constants for default values
const (
	DefaultMigrationsPath       = "migrations"
	DefaultServerHost           = "127.0.0.1"
	DefaultServerPort           = 8080
	DefaultShutdownTimeout      = 30 * time.Second
	DefaultHealthCheckTimeout   = 5 * time.Second
	DefaultLogLevel             = "info"
	DefaultEnvironment          = "development"
	DefaultFetchTimeout         = 60 * time.Second
	DefaultVancouverFoodiesURL  = "https://vancouverfoodies.ca"
	DefaultFoodiesThreshold     = 0.86
	DefaultGoogleMapsHTML       = "halalList.html"
	DefaultGoogleMapsThreshold  = 0.88
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MigrationsPath: getEnv("MIGRATIONS_PATH", DefaultMigrationsPath),
			HealthTimeout:  DefaultHealthCheckTimeout,
		},
		Server: ServerConfig{
			Host:            getEnv("HOST", DefaultServerHost),
			Port:            getEnvAsInt("PORT", DefaultServerPort),
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", DefaultLogLevel),
			Environment: getEnv("APP_ENV", DefaultEnvironment),
		},
		CORS: CORSConfig{
			AllowAll:    getEnvAsBool("CORS_ALLOW_ALL", false),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Sources: SourcesConfig{
			VancouverFoodiesBaseURL:   getEnv("VANCOUVER_FOODIES_URL", DefaultVancouverFoodiesURL),
			VancouverFoodiesThreshold: getEnvAsFloat("MATCH_THRESHOLD_VANCOUVER_FOODIES", DefaultFoodiesThreshold),
			GoogleMapsHTMLPath:        getEnv("GOOGLE_MAPS_HTML", DefaultGoogleMapsHTML),
			GoogleMapsThreshold:       getEnvAsFloat("MATCH_THRESHOLD_GOOGLE_MAPS", DefaultGoogleMapsThreshold),
			FetchTimeout:              DefaultFetchTimeout,
		},
		Features: FeatureFlags{
			EnableScheduler: getEnvAsBool("ENABLE_SCHEDULER", false),
		},
		External: ExternalConfig{
			APIKey: getEnv("API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Database.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "DATABASE_URL",
			Message: "database URL is required",
		})
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "PORT",
			Message: fmt.Sprintf("port must be between 0 and 65535, got %d", c.Server.Port),
		})
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	if !contains(validLogLevels, strings.ToLower(c.Logger.Level)) {
		errors = append(errors, ValidationError{
			Field:   "LOG_LEVEL",
			Message: fmt.Sprintf("invalid log level %q", c.Logger.Level),
		})
	}

	validEnvironments := []string{"production", "development", "staging", "test"}
	if !contains(validEnvironments, strings.ToLower(c.Logger.Environment)) {
		errors = append(errors, ValidationError{
			Field:   "APP_ENV",
			Message: fmt.Sprintf("invalid environment %q", c.Logger.Environment),
		})
	}

	for _, t := range []struct {
		field string
		value float64
	}{
		{"MATCH_THRESHOLD_VANCOUVER_FOODIES", c.Sources.VancouverFoodiesThreshold},
		{"MATCH_THRESHOLD_GOOGLE_MAPS", c.Sources.GoogleMapsThreshold},
	} {
		if t.value <= 0 || t.value > 1 {
			errors = append(errors, ValidationError{
				Field:   t.field,
				Message: fmt.Sprintf("threshold must be in (0, 1], got %g", t.value),
			})
		}
	}

	if c.IsProduction() && c.External.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "API_KEY",
			Message: "API key is required in production",
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Logger.Environment) == "production"
}

// GetBindAddress returns the host:port the server should listen on
func (c *Config) GetBindAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

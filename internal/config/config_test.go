package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{URL: "postgres://localhost/atlas"},
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Logger:   LoggerConfig{Level: "info", Environment: "development"},
		Sources: SourcesConfig{
			VancouverFoodiesThreshold: DefaultFoodiesThreshold,
			GoogleMapsThreshold:       DefaultGoogleMapsThreshold,
		},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/atlas")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Logger.Level)
	assert.Equal(t, DefaultMigrationsPath, cfg.Database.MigrationsPath)
	assert.InDelta(t, DefaultFoodiesThreshold, cfg.Sources.VancouverFoodiesThreshold, 1e-9)
	assert.InDelta(t, DefaultGoogleMapsThreshold, cfg.Sources.GoogleMapsThreshold, 1e-9)
	assert.False(t, cfg.Features.EnableScheduler)
}

func TestLoadThresholdOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/atlas")
	t.Setenv("MATCH_THRESHOLD_GOOGLE_MAPS", "0.92")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.92, cfg.Sources.GoogleMapsThreshold, 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "missing database URL",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "PORT",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logger.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.Sources.GoogleMapsThreshold = 1.5 },
			wantErr: "MATCH_THRESHOLD_GOOGLE_MAPS",
		},
		{
			name:    "threshold zero",
			mutate:  func(c *Config) { c.Sources.VancouverFoodiesThreshold = 0 },
			wantErr: "MATCH_THRESHOLD_VANCOUVER_FOODIES",
		},
		{
			name: "production requires API key",
			mutate: func(c *Config) {
				c.Logger.Environment = "production"
				c.External.APIKey = ""
			},
			wantErr: "API_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

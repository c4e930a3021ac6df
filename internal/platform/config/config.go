// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (session store, gateway) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the client application.
type Config struct {

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// APIBaseURL is the backend gateway root (e.g. "http://localhost:8080/api").
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// UseMockAPI selects the in-process mock gateway instead of the HTTP one.
	// The selection happens once at composition time.
	UseMockAPI bool `env:"USE_MOCK_API" envDefault:"true"`

	// StateDir is where the durable session storage file lives.
	// Empty means in-memory only (no persistence across runs).
	StateDir string `env:"STATE_DIR"`

	// SessionIdleTimeout is how long without user activity before forced logout.
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// RequestTimeout bounds every gateway call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// ServerConfig holds runtime configuration for the mock gateway server.
type ServerConfig struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// SessionSecret signs the HS256 access tokens the mock gateway issues.
	SessionSecret string `env:"SESSION_SECRET" envDefault:"mock-gateway-dev-secret"`

	// SimulatedLatency adds artificial delay to every response, mimicking a
	// real network for UI development. Zero disables it.
	SimulatedLatency time.Duration `env:"SIMULATED_LATENCY" envDefault:"0"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// IsDevelopment reports whether the client runs in a development environment.
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

// IsDevelopment reports whether the server runs in a development environment.
func (c *ServerConfig) IsDevelopment() bool { return c.Environment == "development" }

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a slice.
func (c *ServerConfig) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// LoadServer parses environment variables into a [ServerConfig] struct.
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

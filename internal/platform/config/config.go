// Copyright (c) 2026 Marché Pagne. All rights reserved.
// Author: contact@marche-pagne.shop

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Auth) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Marché Pagne auth server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT,required"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Session Store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTSecret signs the API access tokens. An empty value must never be
	// signed with, so the variable is required at startup.
	JWTSecret string `env:"JWT_SECRET,required"`

	// SessionSecret authenticates the browser session cookie (HMAC).
	SessionSecret string `env:"SESSION_SECRET,required"`

	// AppBaseURL is the external single-page application this backend
	// authenticates for (e.g. https://marche-pagne.vercel.app). Used by the
	// redirect reconciler and the CORS policy.
	AppBaseURL string `env:"APP_BASE_URL,required"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A local .env file is merged first when present (development convenience);
// real environment variables always win.
func Load() (*Config, error) {

	// Best effort: missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if _, err := url.Parse(cfg.AppBaseURL); err != nil {
		return nil, fmt.Errorf("config: APP_BASE_URL is not a valid URL: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

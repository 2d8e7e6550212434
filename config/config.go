package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP configuration
	HTTPAddr string

	// Platform settings with defaults
	DefaultFeeBps int64 // fee used when an initialization request omits fee_bps

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		HTTPAddr:      ":8080",
		DefaultFeeBps: 250,
		Environment:   os.Getenv("ENVIRONMENT"),
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}

	if fee := os.Getenv("DEFAULT_FEE_BPS"); fee != "" {
		parsed, err := strconv.ParseInt(fee, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEFAULT_FEE_BPS: %w", err)
		}
		config.DefaultFeeBps = parsed
	}

	return config, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

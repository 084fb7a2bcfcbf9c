// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	LogLevel  string
	LogPretty bool
	RulesFile string // optional YAML overlay on the default rules
	Workers   int    // batch concurrency, 0 uses the worker pool default
	Style     string // default investment style for commands that take one
}

// Load reads configuration from environment variables, after loading any of
// the given .env files (".env" when none are named). Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", f, err)
			}
		}
	}

	cfg := &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", false),
		RulesFile: getEnv("MENTOR_RULES_FILE", ""),
		Workers:   getEnvAsInt("MENTOR_WORKERS", 0),
		Style:     getEnv("MENTOR_STYLE", "balanced"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("MENTOR_WORKERS must not be negative, got %d", c.Workers)
	}
	if _, err := settings.ResolveStyle(c.Style); err != nil {
		return fmt.Errorf("MENTOR_STYLE: %w", err)
	}
	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("rules file %s: %w", c.RulesFile, err)
		}
	}
	return nil
}

// Rules loads the rule set, applying the rules file when one is configured
func (c *Config) Rules() (settings.Rules, error) {
	return settings.LoadRules(c.RulesFile)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

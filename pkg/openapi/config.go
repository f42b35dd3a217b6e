package openapi

import "os"

type Config struct {
	Title       string `toml:"title"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

type ConfigEnv struct {
	Title       string
	Version     string
	Description string
}

func (c *Config) Finalize(env ConfigEnv) error {
	c.loadDefaults()
	c.loadEnv(env)
	return nil
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Reclaim API"
	}

	if c.Version == "" {
		c.Version = "1.0.0"
	}
}

func (c *Config) loadEnv(env ConfigEnv) {
	if value := os.Getenv(env.Title); value != "" {
		c.Title = value
	}

	if value := os.Getenv(env.Version); value != "" {
		c.Version = value
	}

	if value := os.Getenv(env.Description); value != "" {
		c.Description = value
	}
}

func (c *Config) Merge(overlay *Config) {
	if overlay == nil {
		return
	}

	if overlay.Title != "" {
		c.Title = overlay.Title
	}

	if overlay.Version != "" {
		c.Version = overlay.Version
	}

	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

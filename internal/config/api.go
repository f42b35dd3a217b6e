package config

import (
	"fmt"
	"os"

	"github.com/reclaimhq/reclaim/pkg/formatting"
	"github.com/reclaimhq/reclaim/pkg/middleware"
	"github.com/reclaimhq/reclaim/pkg/openapi"
	"github.com/reclaimhq/reclaim/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "RECLAIM_CORS_ENABLED",
	Origins:          "RECLAIM_CORS_ORIGINS",
	AllowedMethods:   "RECLAIM_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "RECLAIM_CORS_ALLOWED_HEADERS",
	AllowCredentials: "RECLAIM_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "RECLAIM_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "RECLAIM_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "RECLAIM_PAGINATION_MAX_PAGE_SIZE",
}

var docsEnv = openapi.ConfigEnv{
	Title:       "RECLAIM_DOCS_TITLE",
	Version:     "RECLAIM_DOCS_VERSION",
	Description: "RECLAIM_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, upload, CORS, pagination, and docs settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	Docs          openapi.Config        `toml:"docs"`
}

// MaxUploadSizeBytes returns the photo upload cap in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 5 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and docs configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "5MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("RECLAIM_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("RECLAIM_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}

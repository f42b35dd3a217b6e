// Package items implements the found-item domain for Reclaim.
// It provides types, data access, and business logic for item
// submission, browsing, status review, and photo storage integration.
package items

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item represents a found item registered with the service.
// PhotoPath holds the blob storage key of the processed photo and is
// immutable after creation. AIValidation holds the most recent
// moderation verdict verbatim, or nil when the item has never been
// validated.
type Item struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	LocationFound string          `json:"location_found"`
	DateFound     string          `json:"date_found"`
	FinderName    string          `json:"finder_name"`
	FinderEmail   string          `json:"finder_email"`
	PhotoPath     *string         `json:"photo_path"`
	Status        Status          `json:"status"`
	AIValidation  json.RawMessage `json:"ai_validation"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to register a found item.
// Photo holds the raw upload bytes when a photo part was submitted;
// nil means no photo.
type CreateCommand struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	LocationFound string `json:"location_found"`
	DateFound     string `json:"date_found"`
	FinderName    string `json:"finder_name"`
	FinderEmail   string `json:"finder_email"`

	Photo []byte `json:"-"`
}

// Validate trims free-text fields and checks that the required ones
// are present.
func (c *CreateCommand) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	c.Category = strings.TrimSpace(c.Category)
	c.Description = strings.TrimSpace(c.Description)
	c.LocationFound = strings.TrimSpace(c.LocationFound)
	c.DateFound = strings.TrimSpace(c.DateFound)
	c.FinderName = strings.TrimSpace(c.FinderName)
	c.FinderEmail = strings.TrimSpace(c.FinderEmail)

	if c.Title == "" || c.LocationFound == "" || c.DateFound == "" {
		return ErrValidation
	}

	return nil
}

// StatusCommand carries a requested status transition.
type StatusCommand struct {
	Status string `json:"status"`
}

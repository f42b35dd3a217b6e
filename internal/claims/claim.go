// Package claims implements the ownership-claim domain for Reclaim.
package claims

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Claim represents a visitor's assertion of ownership over an item.
// ItemTitle is resolved from the items table at read time; when the
// item has since been deleted it falls back to "Unknown Item".
type Claim struct {
	ID            uuid.UUID `json:"id"`
	ItemID        uuid.UUID `json:"item_id"`
	ClaimantName  string    `json:"claimant_name"`
	ClaimantEmail string    `json:"claimant_email"`
	Details       string    `json:"details"`
	Status        Status    `json:"status"`
	ItemTitle     string    `json:"item_title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UnknownItemTitle is reported for claims whose item no longer exists.
const UnknownItemTitle = "Unknown Item"

// CreateCommand carries the data needed to file a claim. The item is
// not checked for existence; claims may reference any identifier.
type CreateCommand struct {
	ItemID        uuid.UUID `json:"item_id"`
	ClaimantName  string    `json:"claimant_name"`
	ClaimantEmail string    `json:"claimant_email"`
	Details       string    `json:"details"`
}

// Validate trims free-text fields and checks that the required ones
// are present.
func (c *CreateCommand) Validate() error {
	c.ClaimantName = strings.TrimSpace(c.ClaimantName)
	c.ClaimantEmail = strings.TrimSpace(c.ClaimantEmail)
	c.Details = strings.TrimSpace(c.Details)

	if c.ItemID == uuid.Nil || c.ClaimantName == "" || c.ClaimantEmail == "" {
		return ErrValidation
	}

	return nil
}

// StatusCommand carries a requested status transition.
type StatusCommand struct {
	Status string `json:"status"`
}

// Status is the review state of a claim.
type Status string

const (
	StatusNew      Status = "new"
	StatusInReview Status = "in_review"
	StatusResolved Status = "resolved"
)

// Valid reports whether s is a recognized claim status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInReview, StatusResolved:
		return true
	}
	return false
}

package moderation

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for moderation operations.
type System interface {
	Handler() *Handler

	Validate(ctx context.Context, itemID uuid.UUID) (*Result, error)
	Sweep(ctx context.Context) (*SweepResult, error)
}

// SweepReport is the outcome of moderating a single item during a sweep.
type SweepReport struct {
	ItemID uuid.UUID `json:"item_id"`
	Result *Result   `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// SweepResult summarizes a full moderation sweep.
type SweepResult struct {
	Total     int           `json:"total"`
	Validated int           `json:"validated"`
	Failed    int           `json:"failed"`
	Reports   []SweepReport `json:"reports"`
}

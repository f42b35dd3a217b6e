package items

import (
	"context"

	"github.com/google/uuid"

	"github.com/reclaimhq/reclaim/pkg/pagination"
)

// System defines the public contract for item domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Item], error)

	Find(ctx context.Context, id uuid.UUID) (*Item, error)
	Create(ctx context.Context, cmd CreateCommand) (*Item, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// PendingUnvalidated returns every pending item that has no stored
	// moderation verdict.
	PendingUnvalidated(ctx context.Context) ([]Item, error)
}

package api

import (
	"github.com/reclaimhq/reclaim/internal/claims"
	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/internal/moderation"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Items      items.System
	Claims     claims.System
	Moderation moderation.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	itemsSystem := items.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	claimsSystem := claims.New(
		runtime.Database.Connection(),
		itemsSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	moderationSystem := moderation.New(
		runtime.Database.Connection(),
		itemsSystem,
		runtime.Oracle,
		runtime.Logger,
	)

	return &Domain{
		Items:      itemsSystem,
		Claims:     claimsSystem,
		Moderation: moderationSystem,
	}
}

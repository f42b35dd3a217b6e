package moderation

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/pkg/handlers"
	"github.com/reclaimhq/reclaim/pkg/routes"
)

// Handler provides HTTP endpoints for moderation operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "moderation"),
	}
}

// Routes returns the route group definitions for moderation endpoints.
// The validate route keeps its historical top-level path.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/validate-item",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/{id}", Handler: h.Validate},
			},
		},
		{
			Prefix: "/moderation",
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/sweep", Handler: h.Sweep},
			},
		},
	}
}

// Validate moderates a single item and returns the verdict.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, items.ErrNotFound)
		return
	}

	result, err := h.sys.Validate(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Sweep moderates every pending item without a stored verdict.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Sweep(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/reclaimhq/reclaim/pkg/handlers"
	"github.com/reclaimhq/reclaim/pkg/routes"
	"github.com/reclaimhq/reclaim/pkg/storage"
)

type photoHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newPhotoHandler(store storage.System, logger *slog.Logger) *photoHandler {
	return &photoHandler{
		store:  store,
		logger: logger.With("handler", "photos"),
	}
}

func (h *photoHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/photos",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

// download streams a stored photo inline.
func (h *photoHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	result, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			storage.MapHTTPStatus(err), err,
		)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)

	if result.ContentLength > 0 {
		w.Header().Set(
			"Content-Length",
			strconv.FormatInt(result.ContentLength, 10),
		)
	}

	w.WriteHeader(http.StatusOK)
	io.Copy(w, result.Body)
}

package api

import (
	"net/http"

	"github.com/reclaimhq/reclaim/internal/config"
	"github.com/reclaimhq/reclaim/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	photos := newPhotoHandler(runtime.Storage, runtime.Logger)
	docs := buildDocs(cfg)

	groups := []routes.Group{
		domain.Items.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Claims.Handler().Routes(),
		photos.routes(),
	}
	groups = append(groups, domain.Moderation.Handler().Routes()...)

	routes.Register(mux, groups...)

	mux.HandleFunc("GET /openapi.json", docs.Handler())
}

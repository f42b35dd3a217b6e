// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, the moderation
// oracle) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/reclaimhq/reclaim/internal/config"
	"github.com/reclaimhq/reclaim/pkg/database"
	"github.com/reclaimhq/reclaim/pkg/lifecycle"
	"github.com/reclaimhq/reclaim/pkg/oracle"
	"github.com/reclaimhq/reclaim/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Oracle is nil when no credential is configured; moderation then reports
// itself unavailable while the rest of the service runs normally.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Oracle    oracle.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var ora oracle.System
	if cfg.Oracle.Enabled() {
		ora, err = oracle.New(&cfg.Oracle, logger)
		if err != nil {
			return nil, fmt.Errorf("oracle init failed: %w", err)
		}
	} else {
		logger.Warn("no oracle credential configured, moderation disabled")
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Oracle:    ora,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Database and storage hooks are registered for startup and shutdown coordination.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

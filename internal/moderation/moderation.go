package moderation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/pkg/oracle"
	"github.com/reclaimhq/reclaim/pkg/repository"
)

// sweepWorkers bounds the oracle fan-out during a sweep.
const sweepWorkers = 4

type service struct {
	db     *sql.DB
	items  items.System
	oracle oracle.System
	logger *slog.Logger
}

// New creates a moderation service implementing the System interface.
// A nil oracle leaves the service in the not-configured state: every
// operation fails with ErrNotConfigured and no network call is made.
func New(
	db *sql.DB,
	items items.System,
	oracle oracle.System,
	logger *slog.Logger,
) System {
	return &service{
		db:     db,
		items:  items,
		oracle: oracle,
		logger: logger.With("system", "moderation"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Validate moderates a single item and stores the verdict on it.
// Re-validation overwrites any previous verdict.
func (s *service) Validate(ctx context.Context, itemID uuid.UUID) (*Result, error) {
	item, err := s.items.Find(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if s.oracle == nil {
		return nil, ErrNotConfigured
	}

	content, err := s.oracle.Generate(ctx, BuildPrompt(item))
	if err != nil {
		return nil, fmt.Errorf("moderate item %s: %w", itemID, err)
	}

	result, err := ParseResult(content)
	if err != nil {
		return nil, err
	}

	data, err := result.Marshal()
	if err != nil {
		return nil, err
	}

	if err := repository.ExecExpectOne(
		ctx, s.db,
		"UPDATE items SET ai_validation = $1, updated_at = NOW() WHERE id = $2",
		data, itemID,
	); err != nil {
		return nil, repository.MapError(err, items.ErrNotFound, items.ErrDuplicate)
	}

	s.logger.Info("item moderated",
		"id", itemID,
		"legitimate", result.IsLegitimate,
		"confidence", result.Confidence,
		"model", s.oracle.Model(),
	)
	return result, nil
}

// Sweep moderates every pending item without a stored verdict, with a
// bounded worker pool. Per-item failures are reported, not fatal.
func (s *service) Sweep(ctx context.Context) (*SweepResult, error) {
	if s.oracle == nil {
		return nil, ErrNotConfigured
	}

	pending, err := s.items.PendingUnvalidated(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]SweepReport, len(pending))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepWorkers)

	for idx, item := range pending {
		g.Go(func() error {
			result, err := s.Validate(ctx, item.ID)
			report := SweepReport{ItemID: item.ID, Result: result}
			if err != nil {
				report.Error = err.Error()
			}
			reports[idx] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &SweepResult{
		Total:   len(pending),
		Reports: reports,
	}

	for _, report := range reports {
		if report.Error == "" {
			summary.Validated++
		} else {
			summary.Failed++
		}
	}

	s.logger.Info("moderation sweep complete",
		"total", summary.Total,
		"validated", summary.Validated,
		"failed", summary.Failed,
	)
	return summary, nil
}

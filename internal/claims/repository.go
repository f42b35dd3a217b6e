package claims

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/pkg/pagination"
	"github.com/reclaimhq/reclaim/pkg/query"
	"github.com/reclaimhq/reclaim/pkg/repository"
)

type repo struct {
	db         *sql.DB
	items      items.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a claim repository implementing the System interface.
// The items system handles the item status transition when a claim
// is resolved.
func New(
	db *sql.DB,
	items items.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		items:      items,
		logger:     logger.With("system", "claims"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Claim], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ClaimantName", "ClaimantEmail", "ItemTitle")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count claims: %w", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	found, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClaim)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	result := pagination.NewPageResult(found, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Claim, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClaim)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Claim, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO claims(id, item_id, claimant_name, claimant_email, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	id := uuid.New()
	insertArgs := []any{
		id,
		cmd.ItemID,
		cmd.ClaimantName,
		cmd.ClaimantEmail,
		cmd.Details,
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (uuid.UUID, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanID)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("claim filed", "id", id, "item_id", cmd.ItemID)
	return r.Find(ctx, id)
}

// SetStatus updates a claim's review status. Resolving a claim also
// marks its item as claimed; that follow-up write is best-effort and
// never unwinds the claim update.
func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Claim, error) {
	if !Status(status).Valid() {
		return nil, ErrInvalidStatus
	}

	updateQ := `
		UPDATE claims
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id`

	claimID, err := repository.QueryOne(ctx, r.db, updateQ, []any{status, id}, scanID)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	c, err := r.Find(ctx, claimID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("claim status changed", "id", id, "status", status)

	if Status(status) == StatusResolved {
		if _, err := r.items.SetStatus(ctx, c.ItemID, string(items.StatusClaimed)); err != nil {
			r.logger.Warn("item claimed follow-up failed", "item_id", c.ItemID, "error", err)
		}
	}

	return c, nil
}

func scanID(s repository.Scanner) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.Scan(&id)
	return id, err
}

package items

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/reclaimhq/reclaim/internal/imaging"
	"github.com/reclaimhq/reclaim/pkg/pagination"
	"github.com/reclaimhq/reclaim/pkg/query"
	"github.com/reclaimhq/reclaim/pkg/repository"
	"github.com/reclaimhq/reclaim/pkg/storage"
)

const itemColumns = `id, title, category, description, location_found, date_found,
		finder_name, finder_email, photo_path, status, ai_validation, created_at, updated_at`

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an item repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "items"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Item], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description", "LocationFound")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	found, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}

	result := pagination.NewPageResult(found, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Item, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()

	var photoPath *string
	if cmd.Photo != nil {
		photo, err := imaging.Process(bytes.NewReader(cmd.Photo))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPhoto, err)
		}

		key := buildPhotoKey(id)
		if err := r.storage.Upload(ctx, key, bytes.NewReader(photo.Data), photo.ContentType); err != nil {
			return nil, fmt.Errorf("upload item photo: %w", err)
		}

		photoPath = &key
	}

	q := fmt.Sprintf(`
		INSERT INTO items(id, title, category, description, location_found, date_found, finder_name, finder_email, photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, itemColumns)

	insertArgs := []any{
		id,
		cmd.Title,
		cmd.Category,
		cmd.Description,
		cmd.LocationFound,
		cmd.DateFound,
		cmd.FinderName,
		cmd.FinderEmail,
		photoPath,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Item, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanItem)
	})

	if err != nil {
		if photoPath != nil {
			if delErr := r.storage.Delete(ctx, *photoPath); delErr != nil {
				r.logger.Warn("compensating photo delete failed", "key", *photoPath, "error", delErr)
			}
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("item created", "id", i.ID, "title", i.Title)
	return &i, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Item, error) {
	if !Status(status).Valid() {
		return nil, ErrInvalidStatus
	}

	q := fmt.Sprintf(`
		UPDATE items
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, itemColumns)

	i, err := repository.QueryOne(ctx, r.db, q, []any{status, id}, scanItem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("item status changed", "id", id, "status", status)
	return &i, nil
}

// Delete removes an item and every claim filed against it as one unit,
// then clears the stored photo best-effort.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM claims WHERE item_id = $1",
			id,
		); err != nil {
			return struct{}{}, fmt.Errorf("delete item claims: %w", err)
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM items WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if item.PhotoPath != nil {
		if delErr := r.storage.Delete(ctx, *item.PhotoPath); delErr != nil {
			r.logger.Warn(
				"photo delete failed after DB delete",
				"key", *item.PhotoPath,
				"error", delErr,
			)
		}
	}

	r.logger.Info("item deleted", "id", id)
	return nil
}

func (r *repo) PendingUnvalidated(ctx context.Context) ([]Item, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Status", string(StatusPending)).
		WhereNull("AIValidation").
		Build()

	found, err := repository.QueryMany(ctx, r.db, q, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query pending items: %w", err)
	}

	return found, nil
}

func buildPhotoKey(id uuid.UUID) string {
	return fmt.Sprintf("%s.jpg", id)
}

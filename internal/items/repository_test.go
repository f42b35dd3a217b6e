package items_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/pkg/lifecycle"
	"github.com/reclaimhq/reclaim/pkg/pagination"
	"github.com/reclaimhq/reclaim/pkg/repository"
	"github.com/reclaimhq/reclaim/pkg/storage"
)

// stubConn is a minimal driver connection that serves canned rows and
// records every statement, including transaction boundaries, in order.
type stubConn struct {
	queryFn func(query string, args []driver.NamedValue) (driver.Rows, error)
	execFn  func(query string, args []driver.NamedValue) (driver.Result, error)
	log     []string
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.log = append(c.log, "BEGIN")
	return &stubTx{conn: c}, nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.log = append(c.log, query)
	return c.queryFn(query, args)
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.log = append(c.log, query)
	if c.execFn != nil {
		return c.execFn(query, args)
	}
	return driver.RowsAffected(1), nil
}

type stubTx struct{ conn *stubConn }

func (t *stubTx) Commit() error {
	t.conn.log = append(t.conn.log, "COMMIT")
	return nil
}

func (t *stubTx) Rollback() error {
	t.conn.log = append(t.conn.log, "ROLLBACK")
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open not supported")
}

type stubRows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

type fakeBlobs struct {
	deleted []string
}

func (f *fakeBlobs) Start(*lifecycle.Coordinator) error { return nil }

func (f *fakeBlobs) Upload(context.Context, string, io.Reader, string) error { return nil }

func (f *fakeBlobs) Download(context.Context, string) (*storage.DownloadResult, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobs) Exists(context.Context, string) (bool, error) { return false, nil }

var itemColumns = []string{
	"id", "title", "category", "description", "location_found", "date_found",
	"finder_name", "finder_email", "photo_path", "status", "ai_validation",
	"created_at", "updated_at",
}

func itemRow(id uuid.UUID, photoPath driver.Value) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), "Blue Backpack", "bags", "Jansport with keychain",
		"Library", "2026-08-20", "", "", photoPath, "approved", nil, now, now,
	}
}

func newRepo(conn *stubConn, blobs *fakeBlobs) items.System {
	return items.New(
		sql.OpenDB(stubConnector{conn: conn}),
		blobs,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 10, MaxPageSize: 50},
	)
}

func TestDelete(t *testing.T) {
	t.Run("claims removed before item in one transaction", func(t *testing.T) {
		id := uuid.New()

		conn := &stubConn{
			queryFn: func(query string, _ []driver.NamedValue) (driver.Rows, error) {
				return &stubRows{
					columns: itemColumns,
					rows:    [][]driver.Value{itemRow(id, id.String()+".jpg")},
				}, nil
			},
		}
		blobs := &fakeBlobs{}

		if err := newRepo(conn, blobs).Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		find := func(fragment string) int {
			return slices.IndexFunc(conn.log, func(stmt string) bool {
				return strings.Contains(stmt, fragment)
			})
		}

		begin := find("BEGIN")
		claims := find("DELETE FROM claims WHERE item_id")
		item := find("DELETE FROM items WHERE id")
		commit := find("COMMIT")

		if begin < 0 || claims < 0 || item < 0 || commit < 0 {
			t.Fatalf("missing statements, log = %q", conn.log)
		}
		if !(begin < claims && claims < item && item < commit) {
			t.Errorf("statement order = %q, want claims deleted before item inside the transaction", conn.log)
		}
		if find("ROLLBACK") >= 0 {
			t.Errorf("transaction rolled back, log = %q", conn.log)
		}
	})

	t.Run("clears the stored photo after commit", func(t *testing.T) {
		id := uuid.New()
		key := id.String() + ".jpg"

		conn := &stubConn{
			queryFn: func(query string, _ []driver.NamedValue) (driver.Rows, error) {
				return &stubRows{
					columns: itemColumns,
					rows:    [][]driver.Value{itemRow(id, key)},
				}, nil
			},
		}
		blobs := &fakeBlobs{}

		if err := newRepo(conn, blobs).Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		if len(blobs.deleted) != 1 || blobs.deleted[0] != key {
			t.Errorf("deleted blobs = %v, want [%s]", blobs.deleted, key)
		}
	})

	t.Run("item without photo skips blob delete", func(t *testing.T) {
		id := uuid.New()

		conn := &stubConn{
			queryFn: func(query string, _ []driver.NamedValue) (driver.Rows, error) {
				return &stubRows{
					columns: itemColumns,
					rows:    [][]driver.Value{itemRow(id, nil)},
				}, nil
			},
		}
		blobs := &fakeBlobs{}

		if err := newRepo(conn, blobs).Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		if len(blobs.deleted) != 0 {
			t.Errorf("deleted blobs = %v, want none", blobs.deleted)
		}
	})

	t.Run("missing item aborts before any delete", func(t *testing.T) {
		conn := &stubConn{
			queryFn: func(query string, _ []driver.NamedValue) (driver.Rows, error) {
				return &stubRows{columns: itemColumns}, nil
			},
		}

		err := newRepo(conn, &fakeBlobs{}).Delete(context.Background(), uuid.New())
		if !errors.Is(err, items.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}

		for _, stmt := range conn.log {
			if strings.Contains(stmt, "DELETE") {
				t.Errorf("delete executed for missing item: %q", stmt)
			}
		}
	})
}

func TestListSchemaHint(t *testing.T) {
	conn := &stubConn{
		queryFn: func(query string, _ []driver.NamedValue) (driver.Rows, error) {
			return nil, &pgconn.PgError{Code: "42P01", Message: `relation "items" does not exist`}
		},
	}

	_, err := newRepo(conn, &fakeBlobs{}).List(
		context.Background(),
		pagination.PageRequest{},
		items.Filters{},
	)
	if err == nil {
		t.Fatal("List succeeded against a missing table")
	}

	var schemaErr *repository.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want a schema error carrying a hint", err)
	}
	if !strings.Contains(schemaErr.Hint(), "cmd/migrate") {
		t.Errorf("hint = %q, want migration remediation", schemaErr.Hint())
	}
}

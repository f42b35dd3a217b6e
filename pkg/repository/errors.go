package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgDuplicateKeyCode   = "23505"
	pgUndefinedTableCode = "42P01"
)

const schemaHint = "database schema is missing or out of date; run cmd/migrate -up against the configured database"

// SchemaError wraps a store error caused by a missing table, carrying a
// remediation hint that response helpers surface to the client.
type SchemaError struct {
	err error
}

func (e *SchemaError) Error() string { return e.err.Error() }
func (e *SchemaError) Unwrap() error { return e.err }

// Hint returns the remediation hint for schema-mismatch conditions.
func (e *SchemaError) Hint() string { return schemaHint }

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and PostgreSQL unique violation (23505)
// to duplicateErr. Undefined-table errors (42P01) are wrapped in a SchemaError
// so the remediation hint reaches the client. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgDuplicateKeyCode:
			return duplicateErr
		case pgUndefinedTableCode:
			return &SchemaError{err: err}
		}
	}

	return err
}

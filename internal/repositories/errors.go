package repositories

import (
	"context"
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert would break a uniqueness rule.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrReadOnlyTx is returned when a write is attempted inside Store.View.
	ErrReadOnlyTx = errors.New("write attempted in read-only transaction")
)

// SQLExecutor is satisfied by *sql.DB and *sql.Tx. SnapshotRepository.SaveSnapshot takes it so a
// snapshot can be written inside a caller's transaction or straight to the pool.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// paginate returns the page-th slice of list (1-based). pageSize <= 0 returns everything.
// Pages past the end are empty, however large page and pageSize are.
func paginate[T any](list []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return list
	}
	if page <= 0 {
		page = 1
	}
	if len(list) == 0 || page-1 > (len(list)-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []T{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

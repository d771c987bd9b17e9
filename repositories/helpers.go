package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLExecutor lets repository methods run inside a caller-owned transaction
// (bracket generation deletes and recreates a division's matches atomically)
// or directly on the pooled *sql.DB.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundErr error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundErr
	}
	return nil
}

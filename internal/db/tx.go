package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. The settings
// store writes through it, so a batch of saves can run inside a transaction
// without the store knowing which it has.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs a callback inside one transaction. SaveMany uses it so the
// learning cycle's state lands atomically: adaptations and cooldowns are
// either both updated or neither is.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork is the database/sql implementation of UnitOfWork.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(database *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: database}
}

// WithinTx begins a transaction, runs fn, and commits. The transaction rolls
// back when fn returns an error or panics; the panic is re-raised.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	done = true
	return nil
}

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
)

// SQLiteStore persists settings in a single key-value table.
type SQLiteStore struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLiteStore creates a settings store backed by the given database.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading setting %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	if err := saveOne(ctx, s.db, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	return nil
}

// SaveMany writes a batch of settings in one transaction so a learning-cycle
// snapshot (adaptations, cooldowns, rules) lands atomically.
func (s *SQLiteStore) SaveMany(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for key, value := range values {
			if err := saveOne(ctx, tx, key, value, now); err != nil {
				return fmt.Errorf("saving setting %q: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting setting %q: %w", key, err)
	}
	return nil
}

func saveOne(ctx context.Context, dbtx db.DBTX, key string, value []byte, now time.Time) error {
	_, err := dbtx.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
		key, string(value), now.Format(time.RFC3339))
	return err
}

// Compile-time verification that SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

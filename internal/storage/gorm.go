package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/querybase/querybase/internal/query"
)

// Store runs bound statements against a GORM database. Statement parameters
// are passed as named arguments (@name placeholders), so values never travel
// inside the SQL text.
type Store struct {
	db *gorm.DB
}

// New creates a Store backed by the given GORM database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Select executes a data statement and returns the rows as column→value maps.
// Errors from the database are returned unmodified.
func (s *Store) Select(ctx context.Context, stmt query.Statement) ([]query.Row, error) {
	var rows []map[string]any
	if err := s.raw(ctx, stmt).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count executes a count statement and returns the scalar result.
func (s *Store) Count(ctx context.Context, stmt query.Statement) (int64, error) {
	var count int64
	if err := s.raw(ctx, stmt).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Snapshot runs fn against a store scoped to a single database transaction,
// so the count and data round trips of one request observe the same state.
// It commits on success, rolls back on error or panic.
func (s *Store) Snapshot(ctx context.Context, fn func(st query.Store) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&Store{db: tx}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *Store) raw(ctx context.Context, stmt query.Statement) *gorm.DB {
	if len(stmt.Params) > 0 {
		return s.db.WithContext(ctx).Raw(stmt.SQL, stmt.Params)
	}
	return s.db.WithContext(ctx).Raw(stmt.SQL)
}

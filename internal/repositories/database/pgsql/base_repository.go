package pgsql

import (
	"fmt"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// storeError wraps a driver error so callers can match it with apperrors.ErrStoreFailure.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStoreFailure, op, err)
}

package intake

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("intake record not found")

type Repository interface {
	// GetByElderlyID returns the resident's row or ErrNotFound.
	GetByElderlyID(ctx context.Context, elderlyID string) (*Record, error)
	// Upsert keeps at most one row per resident: the existing row is
	// updated in place, otherwise a new one is inserted.
	Upsert(ctx context.Context, rec *Record) error
}

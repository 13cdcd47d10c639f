package nutrition

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("nutrition record not found")

type Repository interface {
	// GetByElderlyID returns the resident's row or ErrNotFound.
	GetByElderlyID(ctx context.Context, elderlyID string) (*Record, error)
	// Upsert keeps at most one row per resident.
	Upsert(ctx context.Context, rec *Record) error
}

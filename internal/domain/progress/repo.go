package progress

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("progress not found")

type Repository interface {
	// Get returns the resident's progress row or ErrNotFound.
	Get(ctx context.Context, elderlyID string) (*Progress, error)
	// Create inserts a fresh row with all flags false.
	Create(ctx context.Context, p *Progress) error
	// Save writes the flags and timestamp of an existing row.
	Save(ctx context.Context, p *Progress) error
	// List returns progress rows, optionally scoped to one facility.
	List(ctx context.Context, nursingHomeID string) ([]*Progress, error)
}

package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

type Repository interface {
	GetNursingHome(ctx context.Context, id string) (*NursingHome, error)
	GetSurveyor(ctx context.Context, id string) (*Surveyor, error)
	GetResident(ctx context.Context, id string) (*Resident, error)

	ListNursingHomes(ctx context.Context) ([]*NursingHome, error)
	ListSurveyors(ctx context.Context, nursingHomeID string) ([]*Surveyor, error)
	ListResidents(ctx context.Context, nursingHomeID string) ([]*Resident, error)
}

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/bluefood/survey/internal/platform/auth"
)

// Authentication failures carry a user-facing reason. A corrected
// login is just a fresh attempt, so no state is kept on failure.
var (
	ErrFacilityNotFound = errors.New("nursing home not found")
	ErrSurveyorNotFound = errors.New("surveyor not found")
	ErrSurveyorMismatch = errors.New("surveyor does not belong to this nursing home")
	ErrResidentNotFound = errors.New("resident not found")
	ErrResidentMismatch = errors.New("resident does not belong to this nursing home")
	ErrBadAdminPassword = errors.New("invalid admin password")
)

type Service struct {
	repo        Repository
	adminSecret string
}

func NewService(repo Repository, adminSecret string) *Service {
	return &Service{repo: repo, adminSecret: adminSecret}
}

// Authenticate validates the identity triple: the facility must exist,
// and both the surveyor and the resident must belong to it. The checks
// run in order so the surveyor sees the first thing that is wrong.
func (s *Service) Authenticate(ctx context.Context, id auth.Identity) error {
	if _, err := s.repo.GetNursingHome(ctx, id.NursingHomeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("looking up nursing home: %w", err)
	}

	surveyor, err := s.repo.GetSurveyor(ctx, id.SurveyorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrSurveyorNotFound
		}
		return fmt.Errorf("looking up surveyor: %w", err)
	}
	if surveyor.NursingHomeID != id.NursingHomeID {
		return ErrSurveyorMismatch
	}

	resident, err := s.repo.GetResident(ctx, id.ElderlyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrResidentNotFound
		}
		return fmt.Errorf("looking up resident: %w", err)
	}
	if resident.NursingHomeID != id.NursingHomeID {
		return ErrResidentMismatch
	}

	return nil
}

// AuthenticateAdmin checks the shared admin secret. It bypasses the
// triple check entirely and grants read-only aggregate access.
func (s *Service) AuthenticateAdmin(password string) error {
	if s.adminSecret == "" || !auth.SecureCompare(password, s.adminSecret) {
		return ErrBadAdminPassword
	}
	return nil
}

func (s *Service) ListNursingHomes(ctx context.Context) ([]*NursingHome, error) {
	return s.repo.ListNursingHomes(ctx)
}

func (s *Service) ListSurveyors(ctx context.Context, nursingHomeID string) ([]*Surveyor, error) {
	return s.repo.ListSurveyors(ctx, nursingHomeID)
}

func (s *Service) ListResidents(ctx context.Context, nursingHomeID string) ([]*Resident, error) {
	return s.repo.ListResidents(ctx, nursingHomeID)
}

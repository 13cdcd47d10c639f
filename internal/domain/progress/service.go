package progress

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bluefood/survey/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the resident's progress row, creating one with
// all flags false on the first dashboard visit.
func (s *Service) GetOrCreate(ctx context.Context, id auth.Identity) (*Progress, error) {
	p, err := s.repo.Get(ctx, id.ElderlyID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("loading progress: %w", err)
	}

	p = &Progress{
		ElderlyID:     id.ElderlyID,
		NursingHomeID: id.NursingHomeID,
		SurveyorID:    id.SurveyorID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating progress: %w", err)
	}
	return p, nil
}

// MarkCompleted flips one questionnaire's flag to true and recomputes
// the overall flag from all three. Flags are monotonic: a completed
// questionnaire never goes back to incomplete.
func (s *Service) MarkCompleted(ctx context.Context, id auth.Identity, questionnaire string) error {
	p, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return err
	}

	switch questionnaire {
	case QuestionnaireIntake:
		p.BasicDone = true
	case QuestionnaireNutrition:
		p.NutritionDone = true
	case QuestionnaireSatisfaction:
		p.SatisfactionDone = true
	default:
		return fmt.Errorf("unknown questionnaire %q", questionnaire)
	}
	p.Recompute()

	if err := s.repo.Save(ctx, p); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// List returns the raw rows for the admin dashboard.
func (s *Service) List(ctx context.Context, nursingHomeID string) ([]*Progress, error) {
	return s.repo.List(ctx, nursingHomeID)
}

// Summarize aggregates completion counts for the admin roll-up.
func (s *Service) Summarize(ctx context.Context, nursingHomeID string) (*Summary, error) {
	rows, err := s.repo.List(ctx, nursingHomeID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Total: len(rows)}
	for _, p := range rows {
		if p.BasicDone {
			sum.BasicDone++
		}
		if p.NutritionDone {
			sum.NutritionDone++
		}
		if p.SatisfactionDone {
			sum.SatisfactionDone++
		}
		if p.AllCompleted {
			sum.AllCompleted++
		}
	}
	if sum.Total > 0 {
		sum.CompletionRate = math.Round(float64(sum.AllCompleted)/float64(sum.Total)*1000) / 10
	}
	return sum, nil
}

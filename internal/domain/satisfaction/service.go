package satisfaction

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bluefood/survey/internal/domain/progress"
	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/internal/platform/manifest"
)

type Service struct {
	repo     Repository
	progress *progress.Service
	manifest manifest.Manifest
}

func NewService(repo Repository, progressSvc *progress.Service) *Service {
	return &Service{repo: repo, progress: progressSvc, manifest: Manifest()}
}

func (s *Service) Name() string { return progress.QuestionnaireSatisfaction }

func (s *Service) TotalPages() int { return 4 }

func (s *Service) RequiredFields() []string { return s.manifest.Required }

// Get returns the persisted record for admin views.
func (s *Service) Get(ctx context.Context, elderlyID string) (*Record, error) {
	return s.repo.GetByElderlyID(ctx, elderlyID)
}

func (s *Service) Hydrate(ctx context.Context, id auth.Identity) (map[string]any, error) {
	rec, err := s.repo.GetByElderlyID(ctx, id.ElderlyID)
	if errors.Is(err, ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	return recordToDraft(rec), nil
}

// Derive recomputes each trial product's mean score from its five
// items. The chewing and swallowing answers arrive as difficulty on a
// 1 to 5 scale and count reverse-scored, so a product that is easy to
// chew scores high.
func (s *Service) Derive(draft map[string]any) map[string]any {
	out := make(map[string]any)
	for i := 1; i <= Products; i++ {
		if score, ok := productScore(draft, i); ok {
			out[fmt.Sprintf("product_%d_score", i)] = score
		}
	}
	return out
}

// Persist freezes the draft into a record, reverse-scoring the ease
// items, upserts it and marks the questionnaire complete.
func (s *Service) Persist(ctx context.Context, id auth.Identity, draft map[string]any) error {
	known, _ := s.manifest.Filter(draft)

	rec := draftToRecord(known)
	rec.NursingHomeID = id.NursingHomeID
	rec.SurveyorID = id.SurveyorID
	rec.ElderlyID = id.ElderlyID

	for i := 1; i <= Products; i++ {
		if score, ok := productScore(known, i); ok {
			rec.ProductScore[i-1] = score
		}
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upserting satisfaction record: %w", err)
	}
	return s.progress.MarkCompleted(ctx, id, s.Name())
}

// reverseScore flips a 1 to 5 difficulty answer into an ease score.
// Unanswered (zero) stays zero.
func reverseScore(v int) int {
	if v <= 0 {
		return 0
	}
	return 6 - v
}

func productScore(draft map[string]any, n int) (float64, bool) {
	taste := manifest.Int(draft, fmt.Sprintf("product_%d_taste", n))
	chewing := manifest.Int(draft, fmt.Sprintf("product_%d_chewing", n))
	swallowing := manifest.Int(draft, fmt.Sprintf("product_%d_swallowing", n))
	satisfaction := manifest.Int(draft, fmt.Sprintf("product_%d_satisfaction", n))
	repurchase := manifest.Int(draft, fmt.Sprintf("product_%d_repurchase", n))

	if taste == 0 && chewing == 0 && swallowing == 0 && satisfaction == 0 && repurchase == 0 {
		return 0, false
	}
	sum := taste + reverseScore(chewing) + reverseScore(swallowing) + satisfaction + repurchase
	return math.Round(float64(sum)/5*10) / 10, true
}

func draftToRecord(draft map[string]any) *Record {
	rec := &Record{
		OverallSatisfaction:        manifest.Int(draft, "overall_satisfaction"),
		PortionAdequacy:            manifest.Int(draft, "portion_adequacy"),
		FoodQuality:                manifest.Int(draft, "food_quality"),
		PreferredFoodGroups:        manifest.JSONText(draft, "preferred_food_groups"),
		PreferredCookingMethods:    manifest.JSONText(draft, "preferred_cooking_methods"),
		ImprovementSuggestions:     manifest.String(draft, "improvement_suggestions"),
		OverallProductSatisfaction: manifest.Int(draft, "overall_product_satisfaction"),
		DesiredCookingTypes:        manifest.JSONText(draft, "desired_cooking_types"),
		DesiredSeafoodTypes:        manifest.JSONText(draft, "desired_seafood_types"),
	}
	for i := 1; i <= Products; i++ {
		rec.ProductTaste[i-1] = manifest.Int(draft, fmt.Sprintf("product_%d_taste", i))
		rec.ProductChewing[i-1] = reverseScore(manifest.Int(draft, fmt.Sprintf("product_%d_chewing", i)))
		rec.ProductSwallowing[i-1] = reverseScore(manifest.Int(draft, fmt.Sprintf("product_%d_swallowing", i)))
		rec.ProductSatisfaction[i-1] = manifest.Int(draft, fmt.Sprintf("product_%d_satisfaction", i))
		rec.ProductRepurchase[i-1] = manifest.Int(draft, fmt.Sprintf("product_%d_repurchase", i))
	}
	return rec
}

func recordToDraft(rec *Record) map[string]any {
	draft := map[string]any{
		"overall_satisfaction":         rec.OverallSatisfaction,
		"portion_adequacy":             rec.PortionAdequacy,
		"food_quality":                 rec.FoodQuality,
		"preferred_food_groups":        rec.PreferredFoodGroups,
		"preferred_cooking_methods":    rec.PreferredCookingMethods,
		"improvement_suggestions":      rec.ImprovementSuggestions,
		"overall_product_satisfaction": rec.OverallProductSatisfaction,
		"desired_cooking_types":        rec.DesiredCookingTypes,
		"desired_seafood_types":        rec.DesiredSeafoodTypes,
	}
	for i := 1; i <= Products; i++ {
		// Stored ease scores hydrate back as difficulty so the form
		// shows what the surveyor originally entered.
		draft[fmt.Sprintf("product_%d_taste", i)] = rec.ProductTaste[i-1]
		draft[fmt.Sprintf("product_%d_chewing", i)] = reverseScore(rec.ProductChewing[i-1])
		draft[fmt.Sprintf("product_%d_swallowing", i)] = reverseScore(rec.ProductSwallowing[i-1])
		draft[fmt.Sprintf("product_%d_satisfaction", i)] = rec.ProductSatisfaction[i-1]
		draft[fmt.Sprintf("product_%d_repurchase", i)] = rec.ProductRepurchase[i-1]
		draft[fmt.Sprintf("product_%d_score", i)] = rec.ProductScore[i-1]
	}
	return draft
}

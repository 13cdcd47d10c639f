package intake

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bluefood/survey/internal/domain/progress"
	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/internal/platform/manifest"
	"github.com/bluefood/survey/pkg/instrument"
)

var kmbiFields = []string{
	"kmbi_1", "kmbi_2", "kmbi_3", "kmbi_4", "kmbi_5", "kmbi_6",
	"kmbi_7", "kmbi_8", "kmbi_9", "kmbi_10", "kmbi_11",
}

var mmseFields = []string{
	"mmse_orientation_time", "mmse_orientation_place", "mmse_registration",
	"mmse_attention", "mmse_recall", "mmse_naming", "mmse_command",
	"mmse_drawing", "mmse_repetition", "mmse_comprehension", "mmse_judgment",
}

// Service runs the intake questionnaire end to end: hydration, score
// derivation and the frozen record written at submit.
type Service struct {
	repo     Repository
	progress *progress.Service
	manifest manifest.Manifest
}

func NewService(repo Repository, progressSvc *progress.Service) *Service {
	return &Service{repo: repo, progress: progressSvc, manifest: Manifest()}
}

func (s *Service) Name() string { return progress.QuestionnaireIntake }

func (s *Service) TotalPages() int { return 7 }

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

// Derive recomputes BMI and the instrument totals from the raw
// answers. Instrument scores only appear once at least one of their
// items has been answered.
func (s *Service) Derive(draft map[string]any) map[string]any {
	out := make(map[string]any)

	if bmi, ok := instrument.BMI(manifest.Float(draft, "height"), manifest.Float(draft, "weight")); ok {
		out["bmi"] = math.Round(bmi*100) / 100
	}

	if hasAny(draft, kmbiFields) {
		_, score := instrument.BarthelScore(kmbiLevels(draft))
		out["k_mbi_score"] = score
		out["k_mbi_band"] = string(instrument.BarthelBand(score))
	}

	if hasAny(draft, mmseFields) {
		total := mmseFromDraft(draft).Total()
		out["mmse_score"] = total
		out["mmse_band"] = string(instrument.MMSEBand(total, educationLevel(manifest.String(draft, "education"))))
	}

	return out
}

// Persist freezes the draft into a record and upserts it, then marks
// the questionnaire complete. The reported K-MBI score is rounded to
// the nearest integer at persistence time.
func (s *Service) Persist(ctx context.Context, id auth.Identity, draft map[string]any) error {
	known, _ := s.manifest.Filter(draft)

	rec := draftToRecord(known)
	rec.NursingHomeID = id.NursingHomeID
	rec.SurveyorID = id.SurveyorID
	rec.ElderlyID = id.ElderlyID

	if bmi, ok := instrument.BMI(rec.Height, rec.Weight); ok {
		rec.BMI = math.Round(bmi*100) / 100
	}
	if hasAny(known, kmbiFields) {
		_, score := instrument.BarthelScore(rec.KMBIItems)
		rec.KMBIScore = int(math.Round(score))
		rec.KMBIBand = string(instrument.BarthelBand(score))
	} else {
		rec.KMBIScore = manifest.Int(known, "k_mbi_score")
	}
	if hasAny(known, mmseFields) {
		rec.MMSEScore = mmseFromDraft(known).Total()
		rec.MMSEBand = string(instrument.MMSEBand(rec.MMSEScore, educationLevel(rec.Education)))
	} else {
		rec.MMSEScore = manifest.Int(known, "mmse_score")
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upserting intake record: %w", err)
	}
	return s.progress.MarkCompleted(ctx, id, s.Name())
}

func hasAny(draft map[string]any, fields []string) bool {
	for _, f := range fields {
		if v, ok := draft[f]; ok && v != nil {
			return true
		}
	}
	return false
}

func kmbiLevels(draft map[string]any) [instrument.BarthelItems]int {
	var levels [instrument.BarthelItems]int
	for i, f := range kmbiFields {
		levels[i] = manifest.Int(draft, f)
	}
	return levels
}

func mmseFromDraft(draft map[string]any) instrument.MMSE {
	return instrument.MMSE{
		OrientationTime:  manifest.Int(draft, "mmse_orientation_time"),
		OrientationPlace: manifest.Int(draft, "mmse_orientation_place"),
		Registration:     manifest.Int(draft, "mmse_registration"),
		Attention:        manifest.Int(draft, "mmse_attention"),
		Recall:           manifest.Int(draft, "mmse_recall"),
		Naming:           manifest.Int(draft, "mmse_naming"),
		Command:          manifest.Int(draft, "mmse_command"),
		Drawing:          manifest.Int(draft, "mmse_drawing"),
		Repetition:       manifest.Int(draft, "mmse_repetition"),
		Comprehension:    manifest.Int(draft, "mmse_comprehension"),
		Judgment:         manifest.Int(draft, "mmse_judgment"),
	}
}

func educationLevel(education string) instrument.Education {
	switch education {
	case "no_schooling", "none":
		return instrument.EducationNone
	case "elementary":
		return instrument.EducationElementary
	default:
		return instrument.EducationMiddleOrAbove
	}
}

func draftToRecord(draft map[string]any) *Record {
	rec := &Record{
		Gender:                manifest.String(draft, "gender"),
		Age:                   manifest.Int(draft, "age"),
		CareGrade:             manifest.String(draft, "care_grade"),
		ResidenceDuration:     manifest.String(draft, "residence_duration"),
		Education:             manifest.String(draft, "education"),
		DrinkingSmoking:       manifest.String(draft, "drinking_smoking"),
		Diseases:              manifest.JSONText(draft, "diseases"),
		Medications:           manifest.JSONText(draft, "medications"),
		MedicationCount:       manifest.Int(draft, "medication_count"),
		ChewingDifficulty:     manifest.String(draft, "chewing_difficulty"),
		SwallowingDifficulty:  manifest.String(draft, "swallowing_difficulty"),
		FoodPreparationMethod: manifest.String(draft, "food_preparation_method"),
		EatingIndependence:    manifest.String(draft, "eating_independence"),
		MealType:              manifest.String(draft, "meal_type"),
		Height:                manifest.Float(draft, "height"),
		Weight:                manifest.Float(draft, "weight"),
		WaistCircumference:    manifest.Float(draft, "waist_circumference"),
		SystolicBP:            manifest.Int(draft, "systolic_bp"),
		DiastolicBP:           manifest.Int(draft, "diastolic_bp"),
		MMSEOrientationTime:   manifest.Int(draft, "mmse_orientation_time"),
		MMSEOrientationPlace:  manifest.Int(draft, "mmse_orientation_place"),
		MMSERegistration:      manifest.Int(draft, "mmse_registration"),
		MMSEAttention:         manifest.Int(draft, "mmse_attention"),
		MMSERecall:            manifest.Int(draft, "mmse_recall"),
		MMSENaming:            manifest.Int(draft, "mmse_naming"),
		MMSECommand:           manifest.Int(draft, "mmse_command"),
		MMSEDrawing:           manifest.Int(draft, "mmse_drawing"),
		MMSERepetition:        manifest.Int(draft, "mmse_repetition"),
		MMSEComprehension:     manifest.Int(draft, "mmse_comprehension"),
		MMSEJudgment:          manifest.Int(draft, "mmse_judgment"),
	}
	rec.KMBIItems = kmbiLevels(draft)
	return rec
}

func recordToDraft(rec *Record) map[string]any {
	draft := map[string]any{
		"gender":                  rec.Gender,
		"age":                     rec.Age,
		"care_grade":              rec.CareGrade,
		"residence_duration":      rec.ResidenceDuration,
		"education":               rec.Education,
		"drinking_smoking":        rec.DrinkingSmoking,
		"diseases":                rec.Diseases,
		"medications":             rec.Medications,
		"medication_count":        rec.MedicationCount,
		"chewing_difficulty":      rec.ChewingDifficulty,
		"swallowing_difficulty":   rec.SwallowingDifficulty,
		"food_preparation_method": rec.FoodPreparationMethod,
		"eating_independence":     rec.EatingIndependence,
		"meal_type":               rec.MealType,
		"height":                  rec.Height,
		"weight":                  rec.Weight,
		"waist_circumference":     rec.WaistCircumference,
		"systolic_bp":             rec.SystolicBP,
		"diastolic_bp":            rec.DiastolicBP,
		"bmi":                     rec.BMI,
		"k_mbi_score":             rec.KMBIScore,
		"k_mbi_band":              rec.KMBIBand,
		"mmse_orientation_time":   rec.MMSEOrientationTime,
		"mmse_orientation_place":  rec.MMSEOrientationPlace,
		"mmse_registration":       rec.MMSERegistration,
		"mmse_attention":          rec.MMSEAttention,
		"mmse_recall":             rec.MMSERecall,
		"mmse_naming":             rec.MMSENaming,
		"mmse_command":            rec.MMSECommand,
		"mmse_drawing":            rec.MMSEDrawing,
		"mmse_repetition":         rec.MMSERepetition,
		"mmse_comprehension":      rec.MMSEComprehension,
		"mmse_judgment":           rec.MMSEJudgment,
		"mmse_score":              rec.MMSEScore,
		"mmse_band":               rec.MMSEBand,
	}
	for i, f := range kmbiFields {
		draft[f] = rec.KMBIItems[i]
	}
	return draft
}

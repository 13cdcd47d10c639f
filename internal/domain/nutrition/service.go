package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/bluefood/survey/internal/domain/progress"
	"github.com/bluefood/survey/internal/platform/auth"
	"github.com/bluefood/survey/internal/platform/manifest"
	"github.com/bluefood/survey/pkg/instrument"
)

var ipaqFields = []string{
	"vigorous_days", "vigorous_minutes", "moderate_days", "moderate_minutes",
	"walking_days", "walking_minutes",
}

var mnaFields = []string{
	"appetite_change", "weight_change", "mobility", "stress_illness",
	"neuropsychological_problem", "bmi_category",
}

// BMILookup resolves a resident's computed BMI from the intake record
// so the MNA-SF BMI sub-item can be pre-seeded instead of asked again.
type BMILookup func(ctx context.Context, elderlyID string) (float64, bool)

type Service struct {
	repo      Repository
	progress  *progress.Service
	manifest  manifest.Manifest
	bmiLookup BMILookup
}

func NewService(repo Repository, progressSvc *progress.Service, bmiLookup BMILookup) *Service {
	return &Service{repo: repo, progress: progressSvc, manifest: Manifest(), bmiLookup: bmiLookup}
}

func (s *Service) Name() string { return progress.QuestionnaireNutrition }

func (s *Service) TotalPages() int { return 4 }

func (s *Service) RequiredFields() []string { return s.manifest.Required }

// Get returns the persisted record for admin views.
func (s *Service) Get(ctx context.Context, elderlyID string) (*Record, error) {
	return s.repo.GetByElderlyID(ctx, elderlyID)
}

func (s *Service) Hydrate(ctx context.Context, id auth.Identity) (map[string]any, error) {
	rec, err := s.repo.GetByElderlyID(ctx, id.ElderlyID)
	if errors.Is(err, ErrNotFound) {
		draft := map[string]any{}
		s.seedBMICategory(ctx, id.ElderlyID, draft)
		return draft, nil
	}
	if err != nil {
		return nil, err
	}
	draft := recordToDraft(rec)
	if rec.BMICategory == 0 {
		s.seedBMICategory(ctx, id.ElderlyID, draft)
	}
	return draft, nil
}

func (s *Service) seedBMICategory(ctx context.Context, elderlyID string, draft map[string]any) {
	if s.bmiLookup == nil {
		return
	}
	if bmi, ok := s.bmiLookup(ctx, elderlyID); ok {
		draft["bmi_category"] = instrument.BMICategory(bmi)
	}
}

// Derive recomputes the MET totals, the aggregate intake rate and the
// MNA-SF score from the raw answers.
func (s *Service) Derive(draft map[string]any) map[string]any {
	out := make(map[string]any)

	if hasAny(draft, ipaqFields) {
		a := ipaqFromDraft(draft)
		out["total_met"] = math.Round(a.TotalMET()*10) / 10
		out["activity_band"] = string(a.Band())
	}

	portions := nestedMap(draft, "meal_portions")
	waste := nestedMap(draft, "plate_waste")
	if portions != nil {
		out["intake_rate"] = aggregateIntakeRate(portions, waste)
	}

	if hasAny(draft, mnaFields) {
		total := mnaFromDraft(draft).Total()
		out["mna_score"] = total
		out["mna_band"] = string(instrument.MNABand(total))
	}

	return out
}

// Persist freezes the draft into a record, upserts it and marks the
// questionnaire complete.
func (s *Service) Persist(ctx context.Context, id auth.Identity, draft map[string]any) error {
	known, _ := s.manifest.Filter(draft)

	rec := draftToRecord(known)
	rec.NursingHomeID = id.NursingHomeID
	rec.SurveyorID = id.SurveyorID
	rec.ElderlyID = id.ElderlyID

	if hasAny(known, ipaqFields) {
		a := ipaqFromDraft(known)
		rec.TotalMET = math.Round(a.TotalMET()*10) / 10
		rec.ActivityBand = string(a.Band())
	}
	if portions := nestedMap(known, "meal_portions"); portions != nil {
		rec.IntakeRate = aggregateIntakeRate(portions, nestedMap(known, "plate_waste"))
	}
	if hasAny(known, mnaFields) {
		rec.MNAScore = mnaFromDraft(known).Total()
		rec.MNABand = string(instrument.MNABand(rec.MNAScore))
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upserting nutrition record: %w", err)
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

func ipaqFromDraft(draft map[string]any) instrument.IPAQ {
	return instrument.IPAQ{
		VigorousDays:    manifest.Int(draft, "vigorous_days"),
		VigorousMinutes: manifest.Int(draft, "vigorous_minutes"),
		ModerateDays:    manifest.Int(draft, "moderate_days"),
		ModerateMinutes: manifest.Int(draft, "moderate_minutes"),
		WalkingDays:     manifest.Int(draft, "walking_days"),
		WalkingMinutes:  manifest.Int(draft, "walking_minutes"),
	}
}

func mnaFromDraft(draft map[string]any) instrument.MNASF {
	return instrument.MNASF{
		Appetite:           manifest.Int(draft, "appetite_change"),
		WeightLoss:         manifest.Int(draft, "weight_change"),
		Mobility:           manifest.Int(draft, "mobility"),
		AcuteStress:        manifest.Int(draft, "stress_illness"),
		Neuropsychological: manifest.Int(draft, "neuropsychological_problem"),
		BMIBand:            manifest.Int(draft, "bmi_category"),
	}
}

// nestedMap returns a nested table field as a map, decoding JSON text
// when the value was stored encoded.
func nestedMap(draft map[string]any, field string) map[string]any {
	switch v := draft[field].(type) {
	case map[string]any:
		return v
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return m
		}
		return nil
	default:
		return nil
	}
}

// aggregateIntakeRate walks the day/meal/item portion table, pairs each
// entry with its plate-waste level and returns the consumed percentage,
// rounded to one decimal. Zero total provided yields zero.
func aggregateIntakeRate(portions, waste map[string]any) float64 {
	var provided, intake float64
	for day, meals := range portions {
		mealTable, ok := meals.(map[string]any)
		if !ok {
			continue
		}
		wasteMeals, _ := lookupMap(waste, day)
		for meal, items := range mealTable {
			itemTable, ok := items.(map[string]any)
			if !ok {
				continue
			}
			wasteItems, _ := lookupMap(wasteMeals, meal)
			for item, grams := range itemTable {
				g := toFloat(grams)
				if g <= 0 {
					continue
				}
				level := instrument.WasteLevel(toInt(wasteItems[item]))
				provided += g
				intake += instrument.IntakeGrams(g, level)
			}
		}
	}
	if provided <= 0 {
		return 0
	}
	return math.Round(intake/provided*1000) / 10
}

func lookupMap(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	sub, ok := m[key].(map[string]any)
	return sub, ok
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func draftToRecord(draft map[string]any) *Record {
	return &Record{
		VigorousDays:       manifest.Int(draft, "vigorous_days"),
		VigorousMinutes:    manifest.Int(draft, "vigorous_minutes"),
		ModerateDays:       manifest.Int(draft, "moderate_days"),
		ModerateMinutes:    manifest.Int(draft, "moderate_minutes"),
		WalkingDays:        manifest.Int(draft, "walking_days"),
		WalkingMinutes:     manifest.Int(draft, "walking_minutes"),
		SittingTime:        manifest.Int(draft, "sitting_time"),
		MealPortions:       manifest.JSONText(draft, "meal_portions"),
		PlateWaste:         manifest.JSONText(draft, "plate_waste"),
		AppetiteChange:     manifest.Int(draft, "appetite_change"),
		WeightChange:       manifest.Int(draft, "weight_change"),
		Mobility:           manifest.Int(draft, "mobility"),
		StressIllness:      manifest.Int(draft, "stress_illness"),
		Neuropsychological: manifest.Int(draft, "neuropsychological_problem"),
		BMICategory:        manifest.Int(draft, "bmi_category"),
	}
}

func recordToDraft(rec *Record) map[string]any {
	return map[string]any{
		"vigorous_days":              rec.VigorousDays,
		"vigorous_minutes":           rec.VigorousMinutes,
		"moderate_days":              rec.ModerateDays,
		"moderate_minutes":           rec.ModerateMinutes,
		"walking_days":               rec.WalkingDays,
		"walking_minutes":            rec.WalkingMinutes,
		"sitting_time":               rec.SittingTime,
		"total_met":                  rec.TotalMET,
		"activity_band":              rec.ActivityBand,
		"meal_portions":              rec.MealPortions,
		"plate_waste":                rec.PlateWaste,
		"intake_rate":                rec.IntakeRate,
		"appetite_change":            rec.AppetiteChange,
		"weight_change":              rec.WeightChange,
		"mobility":                   rec.Mobility,
		"stress_illness":             rec.StressIllness,
		"neuropsychological_problem": rec.Neuropsychological,
		"bmi_category":               rec.BMICategory,
		"mna_score":                  rec.MNAScore,
		"mna_band":                   rec.MNABand,
	}
}

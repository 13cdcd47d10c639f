package nutrition

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const nutritionCols = `id, nursing_home_id, surveyor_id, elderly_id, updated_at,
	vigorous_days, vigorous_minutes, moderate_days, moderate_minutes,
	walking_days, walking_minutes, sitting_time,
	total_met, activity_band,
	meal_portions, plate_waste, intake_rate,
	appetite_change, weight_change, mobility, stress_illness,
	neuropsychological_problem, bmi_category,
	mna_score, mna_band`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.NursingHomeID, &r.SurveyorID, &r.ElderlyID, &r.UpdatedAt,
		&r.VigorousDays, &r.VigorousMinutes, &r.ModerateDays, &r.ModerateMinutes,
		&r.WalkingDays, &r.WalkingMinutes, &r.SittingTime,
		&r.TotalMET, &r.ActivityBand,
		&r.MealPortions, &r.PlateWaste, &r.IntakeRate,
		&r.AppetiteChange, &r.WeightChange, &r.Mobility, &r.StressIllness,
		&r.Neuropsychological, &r.BMICategory,
		&r.MNAScore, &r.MNABand)
	return &r, err
}

func (r *repoPG) GetByElderlyID(ctx context.Context, elderlyID string) (*Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+nutritionCols+` FROM nutrition_survey WHERE elderly_id = $1`, elderlyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) args(rec *Record) []any {
	return []any{
		rec.NursingHomeID, rec.SurveyorID, rec.ElderlyID, rec.UpdatedAt,
		rec.VigorousDays, rec.VigorousMinutes, rec.ModerateDays, rec.ModerateMinutes,
		rec.WalkingDays, rec.WalkingMinutes, rec.SittingTime,
		rec.TotalMET, rec.ActivityBand,
		rec.MealPortions, rec.PlateWaste, rec.IntakeRate,
		rec.AppetiteChange, rec.WeightChange, rec.Mobility, rec.StressIllness,
		rec.Neuropsychological, rec.BMICategory,
		rec.MNAScore, rec.MNABand,
	}
}

func (r *repoPG) Upsert(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()

	var existingID int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM nutrition_survey WHERE elderly_id = $1`, rec.ElderlyID).Scan(&existingID)
	switch {
	case err == nil:
		rec.ID = existingID
		args := append([]any{existingID}, r.args(rec)...)
		_, err = r.pool.Exec(ctx, `
			UPDATE nutrition_survey SET
				nursing_home_id=$2, surveyor_id=$3, elderly_id=$4, updated_at=$5,
				vigorous_days=$6, vigorous_minutes=$7, moderate_days=$8, moderate_minutes=$9,
				walking_days=$10, walking_minutes=$11, sitting_time=$12,
				total_met=$13, activity_band=$14,
				meal_portions=$15, plate_waste=$16, intake_rate=$17,
				appetite_change=$18, weight_change=$19, mobility=$20, stress_illness=$21,
				neuropsychological_problem=$22, bmi_category=$23,
				mna_score=$24, mna_band=$25
			WHERE id = $1`, args...)
		return err
	case errors.Is(err, pgx.ErrNoRows):
		return r.pool.QueryRow(ctx, `
			INSERT INTO nutrition_survey (
				nursing_home_id, surveyor_id, elderly_id, updated_at,
				vigorous_days, vigorous_minutes, moderate_days, moderate_minutes,
				walking_days, walking_minutes, sitting_time,
				total_met, activity_band,
				meal_portions, plate_waste, intake_rate,
				appetite_change, weight_change, mobility, stress_illness,
				neuropsychological_problem, bmi_category,
				mna_score, mna_band)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
			RETURNING id`, r.args(rec)...).Scan(&rec.ID)
	default:
		return err
	}
}

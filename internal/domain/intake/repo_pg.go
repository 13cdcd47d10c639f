package intake

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

const intakeCols = `id, nursing_home_id, surveyor_id, elderly_id, updated_at,
	gender, age, care_grade, residence_duration, education, drinking_smoking,
	diseases, medications, medication_count,
	chewing_difficulty, swallowing_difficulty, food_preparation_method,
	eating_independence, meal_type,
	height, weight, waist_circumference, systolic_bp, diastolic_bp, bmi,
	kmbi_1, kmbi_2, kmbi_3, kmbi_4, kmbi_5, kmbi_6,
	kmbi_7, kmbi_8, kmbi_9, kmbi_10, kmbi_11,
	k_mbi_score, k_mbi_band,
	mmse_orientation_time, mmse_orientation_place, mmse_registration,
	mmse_attention, mmse_recall, mmse_naming, mmse_command,
	mmse_drawing, mmse_repetition, mmse_comprehension, mmse_judgment,
	mmse_score, mmse_band`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.NursingHomeID, &r.SurveyorID, &r.ElderlyID, &r.UpdatedAt,
		&r.Gender, &r.Age, &r.CareGrade, &r.ResidenceDuration, &r.Education, &r.DrinkingSmoking,
		&r.Diseases, &r.Medications, &r.MedicationCount,
		&r.ChewingDifficulty, &r.SwallowingDifficulty, &r.FoodPreparationMethod,
		&r.EatingIndependence, &r.MealType,
		&r.Height, &r.Weight, &r.WaistCircumference, &r.SystolicBP, &r.DiastolicBP, &r.BMI,
		&r.KMBIItems[0], &r.KMBIItems[1], &r.KMBIItems[2], &r.KMBIItems[3], &r.KMBIItems[4], &r.KMBIItems[5],
		&r.KMBIItems[6], &r.KMBIItems[7], &r.KMBIItems[8], &r.KMBIItems[9], &r.KMBIItems[10],
		&r.KMBIScore, &r.KMBIBand,
		&r.MMSEOrientationTime, &r.MMSEOrientationPlace, &r.MMSERegistration,
		&r.MMSEAttention, &r.MMSERecall, &r.MMSENaming, &r.MMSECommand,
		&r.MMSEDrawing, &r.MMSERepetition, &r.MMSEComprehension, &r.MMSEJudgment,
		&r.MMSEScore, &r.MMSEBand)
	return &r, err
}

func (r *repoPG) GetByElderlyID(ctx context.Context, elderlyID string) (*Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+intakeCols+` FROM basic_survey WHERE elderly_id = $1`, elderlyID))
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
		rec.Gender, rec.Age, rec.CareGrade, rec.ResidenceDuration, rec.Education, rec.DrinkingSmoking,
		rec.Diseases, rec.Medications, rec.MedicationCount,
		rec.ChewingDifficulty, rec.SwallowingDifficulty, rec.FoodPreparationMethod,
		rec.EatingIndependence, rec.MealType,
		rec.Height, rec.Weight, rec.WaistCircumference, rec.SystolicBP, rec.DiastolicBP, rec.BMI,
		rec.KMBIItems[0], rec.KMBIItems[1], rec.KMBIItems[2], rec.KMBIItems[3], rec.KMBIItems[4], rec.KMBIItems[5],
		rec.KMBIItems[6], rec.KMBIItems[7], rec.KMBIItems[8], rec.KMBIItems[9], rec.KMBIItems[10],
		rec.KMBIScore, rec.KMBIBand,
		rec.MMSEOrientationTime, rec.MMSEOrientationPlace, rec.MMSERegistration,
		rec.MMSEAttention, rec.MMSERecall, rec.MMSENaming, rec.MMSECommand,
		rec.MMSEDrawing, rec.MMSERepetition, rec.MMSEComprehension, rec.MMSEJudgment,
		rec.MMSEScore, rec.MMSEBand,
	}
}

func (r *repoPG) Upsert(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()

	var existingID int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM basic_survey WHERE elderly_id = $1`, rec.ElderlyID).Scan(&existingID)
	switch {
	case err == nil:
		rec.ID = existingID
		args := append([]any{existingID}, r.args(rec)...)
		_, err = r.pool.Exec(ctx, `
			UPDATE basic_survey SET
				nursing_home_id=$2, surveyor_id=$3, elderly_id=$4, updated_at=$5,
				gender=$6, age=$7, care_grade=$8, residence_duration=$9, education=$10, drinking_smoking=$11,
				diseases=$12, medications=$13, medication_count=$14,
				chewing_difficulty=$15, swallowing_difficulty=$16, food_preparation_method=$17,
				eating_independence=$18, meal_type=$19,
				height=$20, weight=$21, waist_circumference=$22, systolic_bp=$23, diastolic_bp=$24, bmi=$25,
				kmbi_1=$26, kmbi_2=$27, kmbi_3=$28, kmbi_4=$29, kmbi_5=$30, kmbi_6=$31,
				kmbi_7=$32, kmbi_8=$33, kmbi_9=$34, kmbi_10=$35, kmbi_11=$36,
				k_mbi_score=$37, k_mbi_band=$38,
				mmse_orientation_time=$39, mmse_orientation_place=$40, mmse_registration=$41,
				mmse_attention=$42, mmse_recall=$43, mmse_naming=$44, mmse_command=$45,
				mmse_drawing=$46, mmse_repetition=$47, mmse_comprehension=$48, mmse_judgment=$49,
				mmse_score=$50, mmse_band=$51
			WHERE id = $1`, args...)
		return err
	case errors.Is(err, pgx.ErrNoRows):
		return r.pool.QueryRow(ctx, `
			INSERT INTO basic_survey (
				nursing_home_id, surveyor_id, elderly_id, updated_at,
				gender, age, care_grade, residence_duration, education, drinking_smoking,
				diseases, medications, medication_count,
				chewing_difficulty, swallowing_difficulty, food_preparation_method,
				eating_independence, meal_type,
				height, weight, waist_circumference, systolic_bp, diastolic_bp, bmi,
				kmbi_1, kmbi_2, kmbi_3, kmbi_4, kmbi_5, kmbi_6,
				kmbi_7, kmbi_8, kmbi_9, kmbi_10, kmbi_11,
				k_mbi_score, k_mbi_band,
				mmse_orientation_time, mmse_orientation_place, mmse_registration,
				mmse_attention, mmse_recall, mmse_naming, mmse_command,
				mmse_drawing, mmse_repetition, mmse_comprehension, mmse_judgment,
				mmse_score, mmse_band)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
				$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39,$40,
				$41,$42,$43,$44,$45,$46,$47,$48,$49,$50)
			RETURNING id`, r.args(rec)...).Scan(&rec.ID)
	default:
		return err
	}
}

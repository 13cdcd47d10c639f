package satisfaction

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

const satisfactionCols = `id, nursing_home_id, surveyor_id, elderly_id, updated_at,
	overall_satisfaction, portion_adequacy, food_quality,
	preferred_food_groups, preferred_cooking_methods, improvement_suggestions,
	product_1_taste, product_1_chewing, product_1_swallowing, product_1_satisfaction, product_1_repurchase, product_1_score,
	product_2_taste, product_2_chewing, product_2_swallowing, product_2_satisfaction, product_2_repurchase, product_2_score,
	product_3_taste, product_3_chewing, product_3_swallowing, product_3_satisfaction, product_3_repurchase, product_3_score,
	product_4_taste, product_4_chewing, product_4_swallowing, product_4_satisfaction, product_4_repurchase, product_4_score,
	overall_product_satisfaction, desired_cooking_types, desired_seafood_types`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.NursingHomeID, &r.SurveyorID, &r.ElderlyID, &r.UpdatedAt,
		&r.OverallSatisfaction, &r.PortionAdequacy, &r.FoodQuality,
		&r.PreferredFoodGroups, &r.PreferredCookingMethods, &r.ImprovementSuggestions,
		&r.ProductTaste[0], &r.ProductChewing[0], &r.ProductSwallowing[0], &r.ProductSatisfaction[0], &r.ProductRepurchase[0], &r.ProductScore[0],
		&r.ProductTaste[1], &r.ProductChewing[1], &r.ProductSwallowing[1], &r.ProductSatisfaction[1], &r.ProductRepurchase[1], &r.ProductScore[1],
		&r.ProductTaste[2], &r.ProductChewing[2], &r.ProductSwallowing[2], &r.ProductSatisfaction[2], &r.ProductRepurchase[2], &r.ProductScore[2],
		&r.ProductTaste[3], &r.ProductChewing[3], &r.ProductSwallowing[3], &r.ProductSatisfaction[3], &r.ProductRepurchase[3], &r.ProductScore[3],
		&r.OverallProductSatisfaction, &r.DesiredCookingTypes, &r.DesiredSeafoodTypes)
	return &r, err
}

func (r *repoPG) GetByElderlyID(ctx context.Context, elderlyID string) (*Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx,
		`SELECT `+satisfactionCols+` FROM satisfaction_survey WHERE elderly_id = $1`, elderlyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repoPG) args(rec *Record) []any {
	args := []any{
		rec.NursingHomeID, rec.SurveyorID, rec.ElderlyID, rec.UpdatedAt,
		rec.OverallSatisfaction, rec.PortionAdequacy, rec.FoodQuality,
		rec.PreferredFoodGroups, rec.PreferredCookingMethods, rec.ImprovementSuggestions,
	}
	for i := 0; i < Products; i++ {
		args = append(args, rec.ProductTaste[i], rec.ProductChewing[i], rec.ProductSwallowing[i],
			rec.ProductSatisfaction[i], rec.ProductRepurchase[i], rec.ProductScore[i])
	}
	return append(args, rec.OverallProductSatisfaction, rec.DesiredCookingTypes, rec.DesiredSeafoodTypes)
}

func (r *repoPG) Upsert(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now().UTC()

	var existingID int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM satisfaction_survey WHERE elderly_id = $1`, rec.ElderlyID).Scan(&existingID)
	switch {
	case err == nil:
		rec.ID = existingID
		args := append([]any{existingID}, r.args(rec)...)
		_, err = r.pool.Exec(ctx, `
			UPDATE satisfaction_survey SET
				nursing_home_id=$2, surveyor_id=$3, elderly_id=$4, updated_at=$5,
				overall_satisfaction=$6, portion_adequacy=$7, food_quality=$8,
				preferred_food_groups=$9, preferred_cooking_methods=$10, improvement_suggestions=$11,
				product_1_taste=$12, product_1_chewing=$13, product_1_swallowing=$14, product_1_satisfaction=$15, product_1_repurchase=$16, product_1_score=$17,
				product_2_taste=$18, product_2_chewing=$19, product_2_swallowing=$20, product_2_satisfaction=$21, product_2_repurchase=$22, product_2_score=$23,
				product_3_taste=$24, product_3_chewing=$25, product_3_swallowing=$26, product_3_satisfaction=$27, product_3_repurchase=$28, product_3_score=$29,
				product_4_taste=$30, product_4_chewing=$31, product_4_swallowing=$32, product_4_satisfaction=$33, product_4_repurchase=$34, product_4_score=$35,
				overall_product_satisfaction=$36, desired_cooking_types=$37, desired_seafood_types=$38
			WHERE id = $1`, args...)
		return err
	case errors.Is(err, pgx.ErrNoRows):
		return r.pool.QueryRow(ctx, `
			INSERT INTO satisfaction_survey (
				nursing_home_id, surveyor_id, elderly_id, updated_at,
				overall_satisfaction, portion_adequacy, food_quality,
				preferred_food_groups, preferred_cooking_methods, improvement_suggestions,
				product_1_taste, product_1_chewing, product_1_swallowing, product_1_satisfaction, product_1_repurchase, product_1_score,
				product_2_taste, product_2_chewing, product_2_swallowing, product_2_satisfaction, product_2_repurchase, product_2_score,
				product_3_taste, product_3_chewing, product_3_swallowing, product_3_satisfaction, product_3_repurchase, product_3_score,
				product_4_taste, product_4_chewing, product_4_swallowing, product_4_satisfaction, product_4_repurchase, product_4_score,
				overall_product_satisfaction, desired_cooking_types, desired_seafood_types)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
				$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37)
			RETURNING id`, r.args(rec)...).Scan(&rec.ID)
	default:
		return err
	}
}

package progress

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

const progressCols = `elderly_id, nursing_home_id, surveyor_id,
	basic_done, nutrition_done, satisfaction_done, all_completed, updated_at`

func scanProgress(row pgx.Row) (*Progress, error) {
	var p Progress
	err := row.Scan(&p.ElderlyID, &p.NursingHomeID, &p.SurveyorID,
		&p.BasicDone, &p.NutritionDone, &p.SatisfactionDone, &p.AllCompleted, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Get(ctx context.Context, elderlyID string) (*Progress, error) {
	p, err := scanProgress(r.pool.QueryRow(ctx,
		`SELECT `+progressCols+` FROM survey_progress WHERE elderly_id = $1`, elderlyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Progress) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO survey_progress (elderly_id, nursing_home_id, surveyor_id,
			basic_done, nutrition_done, satisfaction_done, all_completed, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ElderlyID, p.NursingHomeID, p.SurveyorID,
		p.BasicDone, p.NutritionDone, p.SatisfactionDone, p.AllCompleted, p.UpdatedAt)
	return err
}

func (r *repoPG) Save(ctx context.Context, p *Progress) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
		UPDATE survey_progress SET nursing_home_id=$2, surveyor_id=$3,
			basic_done=$4, nutrition_done=$5, satisfaction_done=$6,
			all_completed=$7, updated_at=$8
		WHERE elderly_id = $1`,
		p.ElderlyID, p.NursingHomeID, p.SurveyorID,
		p.BasicDone, p.NutritionDone, p.SatisfactionDone, p.AllCompleted, p.UpdatedAt)
	return err
}

func (r *repoPG) List(ctx context.Context, nursingHomeID string) ([]*Progress, error) {
	query := `SELECT ` + progressCols + ` FROM survey_progress`
	args := []any{}
	if nursingHomeID != "" {
		query += ` WHERE nursing_home_id = $1`
		args = append(args, nursingHomeID)
	}
	query += ` ORDER BY elderly_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

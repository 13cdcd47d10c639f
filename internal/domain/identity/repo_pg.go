package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) GetNursingHome(ctx context.Context, id string) (*NursingHome, error) {
	var nh NursingHome
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, capacity, location, nutritionist_present, created_at
		FROM nursing_homes WHERE id = $1`, id).
		Scan(&nh.ID, &nh.Name, &nh.Capacity, &nh.Location, &nh.NutritionistPresent, &nh.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &nh, nil
}

func (r *repoPG) GetSurveyor(ctx context.Context, id string) (*Surveyor, error) {
	var s Surveyor
	err := r.pool.QueryRow(ctx, `
		SELECT id, nursing_home_id, name, created_at
		FROM surveyors WHERE id = $1`, id).
		Scan(&s.ID, &s.NursingHomeID, &s.Name, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) GetResident(ctx context.Context, id string) (*Resident, error) {
	var res Resident
	err := r.pool.QueryRow(ctx, `
		SELECT id, nursing_home_id, name, gender, birth_year, created_at
		FROM elderly_residents WHERE id = $1`, id).
		Scan(&res.ID, &res.NursingHomeID, &res.Name, &res.Gender, &res.BirthYear, &res.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repoPG) ListNursingHomes(ctx context.Context) ([]*NursingHome, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, capacity, location, nutritionist_present, created_at
		FROM nursing_homes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*NursingHome
	for rows.Next() {
		var nh NursingHome
		if err := rows.Scan(&nh.ID, &nh.Name, &nh.Capacity, &nh.Location, &nh.NutritionistPresent, &nh.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &nh)
	}
	return items, rows.Err()
}

func (r *repoPG) ListSurveyors(ctx context.Context, nursingHomeID string) ([]*Surveyor, error) {
	query := `SELECT id, nursing_home_id, name, created_at FROM surveyors`
	args := []any{}
	if nursingHomeID != "" {
		query += ` WHERE nursing_home_id = $1`
		args = append(args, nursingHomeID)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Surveyor
	for rows.Next() {
		var s Surveyor
		if err := rows.Scan(&s.ID, &s.NursingHomeID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) ListResidents(ctx context.Context, nursingHomeID string) ([]*Resident, error) {
	query := `SELECT id, nursing_home_id, name, gender, birth_year, created_at FROM elderly_residents`
	args := []any{}
	if nursingHomeID != "" {
		query += ` WHERE nursing_home_id = $1`
		args = append(args, nursingHomeID)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Resident
	for rows.Next() {
		var res Resident
		if err := rows.Scan(&res.ID, &res.NursingHomeID, &res.Name, &res.Gender, &res.BirthYear, &res.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &res)
	}
	return items, rows.Err()
}

package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedHome struct {
	id                  string
	name                string
	capacity            int
	location            string
	nutritionistPresent bool
}

type seedSurveyor struct {
	id            string
	nursingHomeID string
	name          string
}

type seedResident struct {
	id            string
	nursingHomeID string
	name          string
	gender        string
	birthYear     int
}

// seedSampleData inserts a small fixture set for local development and
// demos. Re-running is safe: existing rows are left untouched.
func seedSampleData(ctx context.Context, pool *pgxpool.Pool) error {
	homes := []seedHome{
		{"NH-001", "Haeundae Silver Care Center", 120, "Busan", true},
		{"NH-002", "Suyeong Elder Home", 60, "Busan", false},
		{"NH-003", "Gijang Coastal Care", 80, "Busan", true},
	}
	surveyors := []seedSurveyor{
		{"SV-001", "NH-001", "Kim Jiyoung"},
		{"SV-002", "NH-001", "Park Minho"},
		{"SV-003", "NH-002", "Lee Soojin"},
		{"SV-004", "NH-003", "Choi Haneul"},
	}
	residents := []seedResident{
		{"EL-001", "NH-001", "Kang Okja", "female", 1938},
		{"EL-002", "NH-001", "Yoon Byungchul", "male", 1942},
		{"EL-003", "NH-001", "Seo Malsoon", "female", 1935},
		{"EL-004", "NH-002", "Jung Kapsoo", "male", 1940},
		{"EL-005", "NH-002", "Han Youngja", "female", 1944},
		{"EL-006", "NH-003", "Oh Deoksoo", "male", 1937},
	}

	for _, h := range homes {
		_, err := pool.Exec(ctx, `
			INSERT INTO nursing_homes (id, name, capacity, location, nutritionist_present)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			h.id, h.name, h.capacity, h.location, h.nutritionistPresent)
		if err != nil {
			return err
		}
	}
	for _, s := range surveyors {
		_, err := pool.Exec(ctx, `
			INSERT INTO surveyors (id, nursing_home_id, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING`,
			s.id, s.nursingHomeID, s.name)
		if err != nil {
			return err
		}
	}
	for _, r := range residents {
		_, err := pool.Exec(ctx, `
			INSERT INTO elderly_residents (id, nursing_home_id, name, gender, birth_year)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			r.id, r.nursingHomeID, r.name, r.gender, r.birthYear)
		if err != nil {
			return err
		}
	}
	return nil
}

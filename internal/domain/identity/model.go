// Package identity guards access to the survey: a surveyor session is
// only granted when the facility, surveyor and resident identifiers
// exist and belong together.
package identity

import "time"

type NursingHome struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Capacity            int       `json:"capacity"`
	Location            string    `json:"location"`
	NutritionistPresent bool      `json:"nutritionist_present"`
	CreatedAt           time.Time `json:"created_at"`
}

type Surveyor struct {
	ID            string    `json:"id"`
	NursingHomeID string    `json:"nursing_home_id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}

type Resident struct {
	ID            string    `json:"id"`
	NursingHomeID string    `json:"nursing_home_id"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	BirthYear     int       `json:"birth_year"`
	CreatedAt     time.Time `json:"created_at"`
}

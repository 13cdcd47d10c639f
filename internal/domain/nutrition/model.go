// Package nutrition persists the nutrition questionnaire: four pages
// covering the IPAQ-SF activity recall, the five-day meal portion and
// plate-waste tables, and the MNA-SF malnutrition screen.
package nutrition

import "time"

// Record is one resident's nutrition row. The portion and waste tables
// are stored as JSON text; scores are frozen at submit time.
type Record struct {
	ID            int64     `json:"id"`
	NursingHomeID string    `json:"nursing_home_id"`
	SurveyorID    string    `json:"surveyor_id"`
	ElderlyID     string    `json:"elderly_id"`
	UpdatedAt     time.Time `json:"updated_at"`

	VigorousDays    int `json:"vigorous_days"`
	VigorousMinutes int `json:"vigorous_minutes"`
	ModerateDays    int `json:"moderate_days"`
	ModerateMinutes int `json:"moderate_minutes"`
	WalkingDays     int `json:"walking_days"`
	WalkingMinutes  int `json:"walking_minutes"`
	SittingTime     int `json:"sitting_time"`

	TotalMET     float64 `json:"total_met"`
	ActivityBand string  `json:"activity_band"`

	MealPortions string  `json:"meal_portions"`
	PlateWaste   string  `json:"plate_waste"`
	IntakeRate   float64 `json:"intake_rate"`

	AppetiteChange     int `json:"appetite_change"`
	WeightChange       int `json:"weight_change"`
	Mobility           int `json:"mobility"`
	StressIllness      int `json:"stress_illness"`
	Neuropsychological int `json:"neuropsychological_problem"`
	BMICategory        int `json:"bmi_category"`

	MNAScore int    `json:"mna_score"`
	MNABand  string `json:"mna_band"`
}

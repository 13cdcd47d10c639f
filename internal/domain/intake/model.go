// Package intake persists the demographic and health questionnaire:
// seven pages covering background, diet, anthropometry, blood
// pressure, the K-MBI functional assessment and the MMSE-K cognitive
// screen.
package intake

import "time"

// Record is one resident's intake row. Checklist answers are stored as
// JSON text; instrument scores are frozen at submit time.
type Record struct {
	ID            int64     `json:"id"`
	NursingHomeID string    `json:"nursing_home_id"`
	SurveyorID    string    `json:"surveyor_id"`
	ElderlyID     string    `json:"elderly_id"`
	UpdatedAt     time.Time `json:"updated_at"`

	Gender            string `json:"gender"`
	Age               int    `json:"age"`
	CareGrade         string `json:"care_grade"`
	ResidenceDuration string `json:"residence_duration"`
	Education         string `json:"education"`
	DrinkingSmoking   string `json:"drinking_smoking"`

	Diseases        string `json:"diseases"`
	Medications     string `json:"medications"`
	MedicationCount int    `json:"medication_count"`

	ChewingDifficulty     string `json:"chewing_difficulty"`
	SwallowingDifficulty  string `json:"swallowing_difficulty"`
	FoodPreparationMethod string `json:"food_preparation_method"`
	EatingIndependence    string `json:"eating_independence"`
	MealType              string `json:"meal_type"`

	Height             float64 `json:"height"`
	Weight             float64 `json:"weight"`
	WaistCircumference float64 `json:"waist_circumference"`
	SystolicBP         int     `json:"systolic_bp"`
	DiastolicBP        int     `json:"diastolic_bp"`
	BMI                float64 `json:"bmi"`

	KMBIItems [11]int `json:"kmbi_items"`
	KMBIScore int     `json:"k_mbi_score"`
	KMBIBand  string  `json:"k_mbi_band"`

	MMSEOrientationTime  int    `json:"mmse_orientation_time"`
	MMSEOrientationPlace int    `json:"mmse_orientation_place"`
	MMSERegistration     int    `json:"mmse_registration"`
	MMSEAttention        int    `json:"mmse_attention"`
	MMSERecall           int    `json:"mmse_recall"`
	MMSENaming           int    `json:"mmse_naming"`
	MMSECommand          int    `json:"mmse_command"`
	MMSEDrawing          int    `json:"mmse_drawing"`
	MMSERepetition       int    `json:"mmse_repetition"`
	MMSEComprehension    int    `json:"mmse_comprehension"`
	MMSEJudgment         int    `json:"mmse_judgment"`
	MMSEScore            int    `json:"mmse_score"`
	MMSEBand             string `json:"mmse_band"`
}

// Package progress tracks which of the three questionnaires have been
// completed for each resident, plus the derived overall flag.
package progress

import "time"

// Questionnaire names shared with the wizard routes.
const (
	QuestionnaireIntake       = "intake"
	QuestionnaireNutrition    = "nutrition"
	QuestionnaireSatisfaction = "satisfaction"
)

type Progress struct {
	ElderlyID        string    `json:"elderly_id"`
	NursingHomeID    string    `json:"nursing_home_id"`
	SurveyorID       string    `json:"surveyor_id"`
	BasicDone        bool      `json:"basic_done"`
	NutritionDone    bool      `json:"nutrition_done"`
	SatisfactionDone bool      `json:"satisfaction_done"`
	AllCompleted     bool      `json:"all_completed"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Recompute derives the overall flag from all three completion flags.
func (p *Progress) Recompute() {
	p.AllCompleted = p.BasicDone && p.NutritionDone && p.SatisfactionDone
}

// Summary is the admin roll-up over a set of progress rows.
type Summary struct {
	Total            int     `json:"total"`
	BasicDone        int     `json:"basic_done"`
	NutritionDone    int     `json:"nutrition_done"`
	SatisfactionDone int     `json:"satisfaction_done"`
	AllCompleted     int     `json:"all_completed"`
	CompletionRate   float64 `json:"completion_rate"`
}

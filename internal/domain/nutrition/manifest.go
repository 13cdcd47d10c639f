package nutrition

import "github.com/bluefood/survey/internal/platform/manifest"

func Manifest() manifest.Manifest {
	fields := []string{
		"vigorous_days", "vigorous_minutes", "moderate_days", "moderate_minutes",
		"walking_days", "walking_minutes", "sitting_time",
		"total_met", "activity_band",
		"meal_portions", "plate_waste", "intake_rate",
		"appetite_change", "weight_change", "mobility", "stress_illness",
		"neuropsychological_problem", "bmi_category",
		"mna_score", "mna_band",
	}
	columns := make(map[string]string, len(fields))
	for _, f := range fields {
		columns[f] = f
	}
	return manifest.Manifest{
		Questionnaire: "nutrition",
		Version:       2,
		Columns:       columns,
		Required:      []string{"appetite_change", "weight_change", "mobility", "mna_score"},
	}
}

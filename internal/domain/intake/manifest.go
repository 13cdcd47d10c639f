package intake

import "github.com/bluefood/survey/internal/platform/manifest"

// Fields and columns share names; the manifest still pins the set so
// draft fields from newer form revisions are dropped with a warning
// instead of breaking the write.
func Manifest() manifest.Manifest {
	fields := []string{
		"gender", "age", "care_grade", "residence_duration", "education", "drinking_smoking",
		"diseases", "medications", "medication_count",
		"chewing_difficulty", "swallowing_difficulty", "food_preparation_method",
		"eating_independence", "meal_type",
		"height", "weight", "waist_circumference", "systolic_bp", "diastolic_bp", "bmi",
		"kmbi_1", "kmbi_2", "kmbi_3", "kmbi_4", "kmbi_5", "kmbi_6",
		"kmbi_7", "kmbi_8", "kmbi_9", "kmbi_10", "kmbi_11",
		"k_mbi_score", "k_mbi_band",
		"mmse_orientation_time", "mmse_orientation_place", "mmse_registration",
		"mmse_attention", "mmse_recall", "mmse_naming", "mmse_command",
		"mmse_drawing", "mmse_repetition", "mmse_comprehension", "mmse_judgment",
		"mmse_score", "mmse_band",
	}
	columns := make(map[string]string, len(fields))
	for _, f := range fields {
		columns[f] = f
	}
	return manifest.Manifest{
		Questionnaire: "intake",
		Version:       3,
		Columns:       columns,
		Required:      []string{"gender", "age", "care_grade", "k_mbi_score", "mmse_score"},
	}
}

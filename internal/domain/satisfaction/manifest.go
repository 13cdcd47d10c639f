package satisfaction

import (
	"fmt"

	"github.com/bluefood/survey/internal/platform/manifest"
)

func Manifest() manifest.Manifest {
	fields := []string{
		"overall_satisfaction", "portion_adequacy", "food_quality",
		"preferred_food_groups", "preferred_cooking_methods", "improvement_suggestions",
		"overall_product_satisfaction", "desired_cooking_types", "desired_seafood_types",
	}
	for i := 1; i <= Products; i++ {
		fields = append(fields,
			fmt.Sprintf("product_%d_taste", i),
			fmt.Sprintf("product_%d_chewing", i),
			fmt.Sprintf("product_%d_swallowing", i),
			fmt.Sprintf("product_%d_satisfaction", i),
			fmt.Sprintf("product_%d_repurchase", i),
			fmt.Sprintf("product_%d_score", i),
		)
	}
	columns := make(map[string]string, len(fields))
	for _, f := range fields {
		columns[f] = f
	}
	return manifest.Manifest{
		Questionnaire: "satisfaction",
		Version:       2,
		Columns:       columns,
		Required:      []string{"overall_satisfaction", "portion_adequacy", "food_quality"},
	}
}

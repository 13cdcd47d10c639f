// Package satisfaction persists the meal satisfaction and preference
// questionnaire: four pages covering facility meals, food preferences,
// and the evaluation of four trial products.
package satisfaction

import "time"

// Products is the number of trial products evaluated per resident.
const Products = 4

// Record is one resident's satisfaction row. The chewing and
// swallowing items are asked as difficulty and stored reverse-scored
// as ease (6 minus the answer).
type Record struct {
	ID            int64     `json:"id"`
	NursingHomeID string    `json:"nursing_home_id"`
	SurveyorID    string    `json:"surveyor_id"`
	ElderlyID     string    `json:"elderly_id"`
	UpdatedAt     time.Time `json:"updated_at"`

	OverallSatisfaction int `json:"overall_satisfaction"`
	PortionAdequacy     int `json:"portion_adequacy"`
	FoodQuality         int `json:"food_quality"`

	PreferredFoodGroups     string `json:"preferred_food_groups"`
	PreferredCookingMethods string `json:"preferred_cooking_methods"`
	ImprovementSuggestions  string `json:"improvement_suggestions"`

	ProductTaste        [Products]int     `json:"product_taste"`
	ProductChewing      [Products]int     `json:"product_chewing"`
	ProductSwallowing   [Products]int     `json:"product_swallowing"`
	ProductSatisfaction [Products]int     `json:"product_satisfaction"`
	ProductRepurchase   [Products]int     `json:"product_repurchase"`
	ProductScore        [Products]float64 `json:"product_score"`

	OverallProductSatisfaction int    `json:"overall_product_satisfaction"`
	DesiredCookingTypes        string `json:"desired_cooking_types"`
	DesiredSeafoodTypes        string `json:"desired_seafood_types"`
}

package instrument

// MNASF holds the six MNA-SF screening sub-scores. The total ranges 0–14.
type MNASF struct {
	Appetite           int `json:"appetite"`            // 0–2, intake decline over 3 months
	WeightLoss         int `json:"weight_loss"`         // 0–3
	Mobility           int `json:"mobility"`            // 0–2
	AcuteStress        int `json:"acute_stress"`        // 0 or 2
	Neuropsychological int `json:"neuropsychological"`  // 0–2
	BMIBand            int `json:"bmi_band"`            // 0–3, see BMICategory
}

// Total sums the sub-scores with per-item clamping. The acute-stress item is
// binary (0 or 2); any positive value counts as 2.
func (m MNASF) Total() int {
	stress := 0
	if m.AcuteStress > 0 {
		stress = 2
	}
	return clamp(m.Appetite, 0, 2) +
		clamp(m.WeightLoss, 0, 3) +
		clamp(m.Mobility, 0, 2) +
		stress +
		clamp(m.Neuropsychological, 0, 2) +
		clamp(m.BMIBand, 0, 3)
}

// BMICategory derives the MNA-SF BMI sub-score from a computed BMI:
// <19 → 0, <21 → 1, <23 → 2, ≥23 → 3.
func BMICategory(bmi float64) int {
	switch {
	case bmi < 19:
		return 0
	case bmi < 21:
		return 1
	case bmi < 23:
		return 2
	default:
		return 3
	}
}

// NutritionBand classifies an MNA-SF total.
type NutritionBand string

const (
	NutritionNormal       NutritionBand = "normal"
	NutritionAtRisk       NutritionBand = "at_risk"
	NutritionMalnourished NutritionBand = "malnourished"
)

// MNABand bands a total: ≥12 normal, ≥8 at risk, else malnourished.
func MNABand(total int) NutritionBand {
	switch {
	case total >= 12:
		return NutritionNormal
	case total >= 8:
		return NutritionAtRisk
	default:
		return NutritionMalnourished
	}
}

// Package instrument implements the clinical assessment instruments used by
// the survey questionnaires: BMI, K-MBI (Korean Modified Barthel Index),
// MMSE-K (Korean Mini-Mental State Examination), MNA-SF (Mini Nutritional
// Assessment, Short Form), IPAQ-SF (International Physical Activity
// Questionnaire, Short Form) and the visual plate-waste method.
//
// All scorers are pure functions over fixed-size inputs. They never fail:
// out-of-range sub-scores are clamped and missing inputs default to zero.
package instrument

// BMI computes body mass index (kg/m²) from height in centimeters and weight
// in kilograms. ok is false when either measurement is non-positive, in which
// case the index is undefined and must not be displayed or persisted.
func BMI(heightCm, weightKg float64) (float64, bool) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, false
	}
	m := heightCm / 100
	return weightKg / (m * m), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

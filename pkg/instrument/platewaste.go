package instrument

// WasteLevel is a 5-level visual "plate remaining" estimate: 0 = ate
// everything, 1 = ~25% left, 2 = ~50% left, 3 = ~75% left, 4 = all left.
type WasteLevel int

var wasteRatios = [...]float64{0, 0.25, 0.5, 0.75, 1.0}

// Ratio returns the fraction of the provided portion left on the plate.
// Levels outside [0,4] are clamped.
func (l WasteLevel) Ratio() float64 {
	return wasteRatios[clamp(int(l), 0, len(wasteRatios)-1)]
}

// IntakeGrams estimates consumed grams for one food item from the provided
// portion and the observed waste level.
func IntakeGrams(providedGrams float64, level WasteLevel) float64 {
	if providedGrams <= 0 {
		return 0
	}
	return providedGrams * (1 - level.Ratio())
}

// IntakeRate returns the aggregate intake percentage over a survey period,
// given total provided and total wasted grams. Zero when nothing was
// provided.
func IntakeRate(providedGrams, wastedGrams float64) float64 {
	if providedGrams <= 0 {
		return 0
	}
	return (providedGrams - wastedGrams) / providedGrams * 100
}

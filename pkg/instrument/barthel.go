package instrument

import "math"

// BarthelItems is the number of K-MBI assessment items (personal hygiene,
// bathing, feeding, toileting, stair climbing, dressing, bowel control,
// bladder control, ambulation, wheelchair use, chair/bed transfer).
const BarthelItems = 11

// barthelMaxLevel is the top of the 5-level ordinal scale per item:
// 0 = cannot perform … 4 = fully independent.
const barthelMaxLevel = 4

// DependencyBand classifies a K-MBI score.
type DependencyBand string

const (
	Independent        DependencyBand = "independent"
	MildDependence     DependencyBand = "mild_dependence"
	ModerateDependence DependencyBand = "moderate_dependence"
	SevereDependence   DependencyBand = "severe_dependence"
	TotalDependence    DependencyBand = "total_dependence"
)

// BarthelScore converts the 11 per-item levels into the raw total (0–44) and
// the reported 100-point score, rounded to one decimal place. Levels outside
// [0,4] are clamped.
func BarthelScore(levels [BarthelItems]int) (raw int, score float64) {
	for _, l := range levels {
		raw += clamp(l, 0, barthelMaxLevel)
	}
	score = math.Round(float64(raw)/44*100*10) / 10
	return raw, score
}

// BarthelBand maps a 100-point K-MBI score to its dependency band.
func BarthelBand(score float64) DependencyBand {
	switch {
	case score >= 90:
		return Independent
	case score >= 75:
		return MildDependence
	case score >= 60:
		return ModerateDependence
	case score >= 40:
		return SevereDependence
	default:
		return TotalDependence
	}
}

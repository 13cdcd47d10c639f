package instrument

// MMSE holds the per-domain sub-scores of the MMSE-K. Domain maxima sum to 30.
type MMSE struct {
	OrientationTime  int `json:"orientation_time"`  // 0–5
	OrientationPlace int `json:"orientation_place"` // 0–5
	Registration     int `json:"registration"`      // 0–3
	Attention        int `json:"attention"`         // 0–5
	Recall           int `json:"recall"`            // 0–3
	Naming           int `json:"naming"`            // 0–2
	Command          int `json:"command"`           // 0–3, three-step command
	Drawing          int `json:"drawing"`           // 0–1
	Repetition       int `json:"repetition"`        // 0–1
	Comprehension    int `json:"comprehension"`     // 0–1
	Judgment         int `json:"judgment"`          // 0–1
}

// MMSETotal is the maximum attainable MMSE-K total.
const MMSETotal = 30

// Total sums the domain sub-scores, clamping each to its domain maximum.
func (m MMSE) Total() int {
	return clamp(m.OrientationTime, 0, 5) +
		clamp(m.OrientationPlace, 0, 5) +
		clamp(m.Registration, 0, 3) +
		clamp(m.Attention, 0, 5) +
		clamp(m.Recall, 0, 3) +
		clamp(m.Naming, 0, 2) +
		clamp(m.Command, 0, 3) +
		clamp(m.Drawing, 0, 1) +
		clamp(m.Repetition, 0, 1) +
		clamp(m.Comprehension, 0, 1) +
		clamp(m.Judgment, 0, 1)
}

// Education is the respondent's schooling level, which shifts the MMSE-K
// normal cutoff.
type Education int

const (
	EducationNone Education = iota
	EducationElementary
	EducationMiddleOrAbove
)

// MMSECutoff returns the education-adjusted normal cutoff: no schooling ≥19,
// elementary ≥22, middle school or above ≥24.
func MMSECutoff(edu Education) int {
	switch edu {
	case EducationNone:
		return 19
	case EducationElementary:
		return 22
	default:
		return 24
	}
}

// CognitiveBand classifies an MMSE-K total against the education cutoff.
type CognitiveBand string

const (
	CognitiveNormal         CognitiveBand = "normal"
	CognitiveMildImpairment CognitiveBand = "mild_impairment_suspected"
	CognitiveImpairment     CognitiveBand = "impairment_suspected"
)

// MMSEBand bands a total score: at or above the cutoff is normal, within four
// points below it is mild impairment suspected, anything lower is impairment
// suspected.
func MMSEBand(total int, edu Education) CognitiveBand {
	cutoff := MMSECutoff(edu)
	switch {
	case total >= cutoff:
		return CognitiveNormal
	case total >= cutoff-4:
		return CognitiveMildImpairment
	default:
		return CognitiveImpairment
	}
}

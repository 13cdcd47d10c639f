package instrument

// MET weights per activity class, from the IPAQ-SF scoring protocol.
const (
	vigorousMET = 8.0
	moderateMET = 4.0
	walkingMET  = 3.3
)

// IPAQ holds the six IPAQ-SF recall answers: days per week and minutes per
// day for each activity class over the last seven days.
type IPAQ struct {
	VigorousDays    int `json:"vigorous_days"`
	VigorousMinutes int `json:"vigorous_minutes"`
	ModerateDays    int `json:"moderate_days"`
	ModerateMinutes int `json:"moderate_minutes"`
	WalkingDays     int `json:"walking_days"`
	WalkingMinutes  int `json:"walking_minutes"`
}

// VigorousMET returns weekly MET-minutes of vigorous activity.
func (a IPAQ) VigorousMET() float64 {
	return vigorousMET * float64(a.VigorousDays) * float64(a.VigorousMinutes)
}

// ModerateMET returns weekly MET-minutes of moderate activity.
func (a IPAQ) ModerateMET() float64 {
	return moderateMET * float64(a.ModerateDays) * float64(a.ModerateMinutes)
}

// WalkingMET returns weekly MET-minutes of walking.
func (a IPAQ) WalkingMET() float64 {
	return walkingMET * float64(a.WalkingDays) * float64(a.WalkingMinutes)
}

// TotalMET returns total weekly MET-minutes across all three classes.
func (a IPAQ) TotalMET() float64 {
	return a.VigorousMET() + a.ModerateMET() + a.WalkingMET()
}

// ActivityBand is the IPAQ-SF categorical activity level.
type ActivityBand string

const (
	ActivityHigh     ActivityBand = "high"
	ActivityModerate ActivityBand = "moderate"
	ActivityLow      ActivityBand = "low"
)

// Band classifies the weekly activity level per the IPAQ-SF protocol.
func (a IPAQ) Band() ActivityBand {
	total := a.TotalMET()
	switch {
	case total >= 3000 || (a.VigorousDays >= 3 && a.VigorousMET() >= 1500):
		return ActivityHigh
	case total >= 600 || a.VigorousDays >= 3 ||
		(a.ModerateDays+a.WalkingDays >= 5 && a.ModerateMET()+a.WalkingMET() >= 600):
		return ActivityModerate
	default:
		return ActivityLow
	}
}

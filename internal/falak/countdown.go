package falak

import "time"

// countdownLeadDays is how many civil days before Ramadan the countdown
// window opens. Anchoring at the sunset 31 days out yields a 30-day lead.
const countdownLeadDays = 31

// CountdownStatus is the remaining time before Ramadan starts. It is
// derived on every tick and never persisted.
type CountdownStatus struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// EvaluateCountdown derives the live countdown state at now for a resolved
// Ramadan start. ok is false outside the visibility window: before the
// sunset boundary 31 days ahead of the start, or once the start has passed.
func EvaluateCountdown(now, ramadanStart time.Time, loc Location) (CountdownStatus, bool) {
	windowStart := Sunset(ramadanStart.AddDate(0, 0, -countdownLeadDays), loc)
	if now.Before(windowStart) || !now.Before(ramadanStart) {
		return CountdownStatus{}, false
	}

	// Integer floor division throughout; the display never rounds up.
	totalMinutes := int(ramadanStart.Sub(now) / time.Minute)
	totalHours := totalMinutes / 60
	return CountdownStatus{
		Days:    totalHours / 24,
		Hours:   totalHours % 24,
		Minutes: totalMinutes % 60,
	}, true
}

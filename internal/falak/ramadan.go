package falak

import (
	"fmt"
	"time"

	"github.com/amanah-digital/ramadan30/internal/hijri"
)

// StartResolver finds the sunset-anchored instant at which the next
// Ramadan begins. Clock and calendar conversion are injected so every
// resolution is deterministic under test.
type StartResolver struct {
	Hijri hijri.Converter
	Zone  *time.Location
	Now   func() time.Time
}

func NewStartResolver(conv hijri.Converter, zone *time.Location) *StartResolver {
	return &StartResolver{Hijri: conv, Zone: zone, Now: time.Now}
}

// NextStart returns the start instant of the current or next Ramadan.
// While the fasting month is underway the returned instant lies in the
// past, but never by more than the month's own span.
func (r *StartResolver) NextStart(loc Location) (time.Time, error) {
	now := r.Now()
	cur, err := r.Hijri.Today(now)
	if err != nil {
		return time.Time{}, err
	}

	year := cur.Year
	past, err := r.ramadanElapsed(cur)
	if err != nil {
		return time.Time{}, err
	}
	if past {
		year++
	}
	return r.startOfRamadan(year, loc)
}

// startOfRamadan computes sunset on the eve of 1 Ramadan: the Islamic day
// begins at the preceding sunset.
func (r *StartResolver) startOfRamadan(hijriYear int, loc Location) (time.Time, error) {
	civil, err := r.Hijri.ToCivil(hijri.Date{Year: hijriYear, Month: hijri.Ramadan, Day: 1})
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve 1 Ramadan %d: %w", hijriYear, err)
	}
	firstDay := time.Date(civil.Year(), civil.Month(), civil.Day(), 0, 0, 0, 0, r.Zone)
	eve := firstDay.AddDate(0, 0, -1)
	return Sunset(eve, loc), nil
}

// ramadanElapsed reports whether the given Hijri date falls after the end
// of its year's Ramadan. The month length is queried, never assumed.
func (r *StartResolver) ramadanElapsed(d hijri.Date) (bool, error) {
	if d.Month < hijri.Ramadan {
		return false, nil
	}
	if d.Month > hijri.Ramadan {
		return true, nil
	}
	days, err := r.Hijri.DaysInMonth(d.Year, hijri.Ramadan)
	if err != nil {
		return false, err
	}
	return d.Day > days, nil
}

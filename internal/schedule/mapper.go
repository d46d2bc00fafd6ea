// Package schedule maps the 30 campaign slots onto concrete civil dates
// and resolves which slot is featured "today" in the platform's fixed
// reference time zone.
package schedule

import (
	"fmt"
	"time"

	"github.com/amanah-digital/ramadan30/internal/model"
)

// CampaignDays is the number of published daily slots. Lunar months run 29
// or 30 days, but the campaign always publishes exactly 30.
const CampaignDays = 30

// Mapper resolves slot dates against one fixed civil time zone, regardless
// of the caller's own zone. Now is injectable for tests.
type Mapper struct {
	Zone *time.Location
	Now  func() time.Time
}

func NewMapper(zone *time.Location) *Mapper {
	return &Mapper{Zone: zone, Now: time.Now}
}

// DateForDay returns the civil date of slot n (1..30) for a campaign
// starting on start. Days are added to a fixed mid-day anchor so daylight
// shifts can never move the result across a date line.
func (m *Mapper) DateForDay(start time.Time, n int) time.Time {
	anchor := time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, m.Zone)
	return anchor.AddDate(0, 0, n-1)
}

// ToDateString formats t as zero-padded YYYY-MM-DD from its local calendar
// components. Deliberately not a UTC conversion: near local midnight that
// would shift the date by one.
func ToDateString(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string as a date in the mapper's zone.
func (m *Mapper) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, m.Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// TodayString is the current date in the fixed reference zone.
func (m *Mapper) TodayString() string {
	return ToDateString(m.Now().In(m.Zone))
}

// ResolveToday returns the persisted slot featured today, or nil when no
// day matches (campaign not running, or today's slot unassigned).
func (m *Mapper) ResolveToday(days []model.CampaignDay) *model.CampaignDay {
	today := m.TodayString()
	for i := range days {
		if days[i].FeaturedDate == today {
			return &days[i]
		}
	}
	return nil
}

// Slot is one rendered cell of the 30-day schedule grid.
type Slot struct {
	DayNumber int                `json:"day_number"`
	Date      string             `json:"date"`
	IsToday   bool               `json:"is_today"`
	IsPast    bool               `json:"is_past"`
	Entry     *model.CampaignDay `json:"entry,omitempty"`
}

// Slots expands a year's persisted days into all 30 cells, with gaps where
// no institution was assigned. IsPast relies on zero-padded ISO strings
// comparing lexically in chronological order.
func (m *Mapper) Slots(start time.Time, days []model.CampaignDay) []Slot {
	byNumber := make(map[int]*model.CampaignDay, len(days))
	for i := range days {
		byNumber[days[i].DayNumber] = &days[i]
	}

	today := m.TodayString()
	slots := make([]Slot, 0, CampaignDays)
	for n := 1; n <= CampaignDays; n++ {
		date := ToDateString(m.DateForDay(start, n))
		slots = append(slots, Slot{
			DayNumber: n,
			Date:      date,
			IsToday:   today == date,
			IsPast:    today > date,
			Entry:     byNumber[n],
		})
	}
	return slots
}

// ValidDayNumber reports whether n addresses one of the 30 slots. Boundary
// consumers must reject out-of-range day numbers before any lookup.
func ValidDayNumber(n int) bool {
	return n >= 1 && n <= CampaignDays
}

// Package hijri exposes the narrow lunar-calendar conversion contract the
// campaign engine depends on. Lunar astronomy itself is delegated to an
// external, independently tested library.
package hijri

import "time"

// Ramadan is the fasting month's number in the Hijri calendar.
const Ramadan = 9

// Date is a Hijri calendar date. Month runs 1..12.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Converter converts between the Hijri and civil calendars.
type Converter interface {
	// Today returns the Hijri date for the given civil instant.
	Today(now time.Time) (Date, error)
	// ToCivil returns the civil date (midnight UTC) for a Hijri date.
	ToCivil(d Date) (time.Time, error)
	// DaysInMonth returns the length of a Hijri month, 29 or 30.
	// Month lengths vary by year and must always be queried.
	DaysInMonth(year, month int) (int, error)
}

// Package falak computes the sunset-anchored Islamic day boundary and the
// campaign's Ramadan start and countdown state. All functions are pure and
// safe for concurrent use.
package falak

import (
	"math"
	"time"
)

// Location is a geographic position in degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// LocationFromOffset approximates a location from a civil UTC offset in
// minutes (east positive). Longitude follows the offset's meridian;
// latitude falls back to the equator, which keeps sunset near 18:00.
func LocationFromOffset(offsetMinutes int) Location {
	return Location{Latitude: 0, Longitude: float64(offsetMinutes) / 60 * 15}
}

// Depression angle for observed sunset: atmospheric refraction plus the
// sun's apparent radius.
const sunsetDepressionDeg = 0.833

// Fixed fallback clock hours for degenerate solar geometry. Sunset never
// fails; it degrades to one of these on the same calendar day.
const (
	fallbackNoSunsetHour  = 23
	fallbackNoSunriseHour = 14
	fallbackInvalidHour   = 19
)

// Sunset returns the local sunset instant for the given calendar date and
// location, on the same calendar day and in the same time zone as date.
// Times are approximate (low-precision solar formulas), not authoritative
// to the minute against any published prayer-time table.
func Sunset(date time.Time, loc Location) time.Time {
	_, offsetSec := date.Zone()
	hours := sunsetHours(date.YearDay(), loc, float64(offsetSec)/3600)
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		hours = fallbackInvalidHour
	}
	// A site far from its zone's meridian can land across the clock
	// midnight; wrap onto the same calendar day.
	hours = math.Mod(hours, 24)
	if hours < 0 {
		hours += 24
	}
	h := int(hours)
	m := int(math.Floor((hours - float64(h)) * 60))
	s := int(math.Floor((hours-float64(h))*3600)) % 60
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, s, 0, date.Location())
}

// sunsetHours returns sunset as decimal clock hours for a day of year.
// Solar noon is anchored to the civil zone's meridian (offset × 15°), then
// shifted by how far the site sits from it and by the equation of time.
func sunsetHours(dayOfYear int, loc Location, zoneOffsetHours float64) float64 {
	doy := float64(dayOfYear)

	declDeg := 23.45 * math.Sin(rad(360.0/365.0*(284.0+doy)))
	latRad := rad(loc.Latitude)
	declRad := rad(declDeg)

	cosH := -math.Tan(latRad)*math.Tan(declRad) -
		math.Sin(rad(sunsetDepressionDeg))/(math.Cos(latRad)*math.Cos(declRad))
	if cosH > 1 {
		return fallbackNoSunsetHour
	}
	if cosH < -1 {
		return fallbackNoSunriseHour
	}

	hourAngle := math.Acos(cosH)

	b := rad(360.0 / 365.0 * (doy - 81))
	eotMinutes := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
	solarNoon := 12 + zoneOffsetHours - loc.Longitude/15.0 - eotMinutes/60.0

	return solarNoon + hourAngle*12/math.Pi
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

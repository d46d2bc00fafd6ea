package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Campaign holds the platform's fixed reference market settings: the one
// civil timezone used to resolve "today", and the coordinates used for
// server-side sunset computation. Defaults target Kuala Lumpur.
type Campaign struct {
	Zone      *time.Location
	Latitude  float64
	Longitude float64
}

const (
	defaultTimezone  = "Asia/Kuala_Lumpur"
	defaultLatitude  = 3.1390
	defaultLongitude = 101.6869
)

// LoadCampaign reads the campaign settings from environment variables.
func LoadCampaign() (*Campaign, error) {
	tz := os.Getenv("CAMPAIGN_TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	zone, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid CAMPAIGN_TIMEZONE %q: %w", tz, err)
	}

	lat, err := floatEnv("CAMPAIGN_LATITUDE", defaultLatitude)
	if err != nil {
		return nil, err
	}
	lon, err := floatEnv("CAMPAIGN_LONGITUDE", defaultLongitude)
	if err != nil {
		return nil, err
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("CAMPAIGN_LATITUDE %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("CAMPAIGN_LONGITUDE %v out of range", lon)
	}

	return &Campaign{Zone: zone, Latitude: lat, Longitude: lon}, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

package model

import "time"

// CampaignDay is one persisted slot of a year's 30-day curation.
// A day with no assigned institution is never stored; absence means
// "unassigned".
type CampaignDay struct {
	Year          int       `db:"year" json:"year"`
	DayNumber     int       `db:"day_number" json:"day_number"`
	FeaturedDate  string    `db:"featured_date" json:"featured_date"` // YYYY-MM-DD
	InstitutionID int       `db:"institution_id" json:"institution_id"`
	Caption       *string   `db:"caption" json:"caption"`
	CuratedBy     int       `db:"curated_by" json:"curated_by"`
	CuratedAt     time.Time `db:"curated_at" json:"curated_at"`
}

// CampaignEntry is the write-side shape of one slot, before persistence.
// Entries without an institution are dropped by the store.
type CampaignEntry struct {
	DayNumber     int
	FeaturedDate  string
	InstitutionID *int
	Caption       *string
}

// FeaturedDay is a campaign day joined with its institution for display.
type FeaturedDay struct {
	CampaignDay
	InstitutionName     string `db:"institution_name" json:"institution_name"`
	InstitutionSlug     string `db:"institution_slug" json:"institution_slug"`
	InstitutionCategory string `db:"institution_category" json:"institution_category"`
	InstitutionState    string `db:"institution_state" json:"institution_state"`
	InstitutionCity     string `db:"institution_city" json:"institution_city"`
	InstitutionQR       string `db:"institution_qr_payload" json:"institution_qr_payload"`
}

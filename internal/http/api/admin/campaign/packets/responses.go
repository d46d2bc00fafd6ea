package packets

import "time"

type ReplaceCampaignResponse struct {
	Year      int    `json:"year"`
	Persisted int    `json:"persisted"`
	Message   string `json:"message"`
}

// CampaignDayResponse mirrors model.CampaignDay for the curation UI.
type CampaignDayResponse struct {
	Year          int       `json:"year"`
	DayNumber     int       `json:"day_number"`
	FeaturedDate  string    `json:"featured_date"`
	InstitutionID int       `json:"institution_id"`
	Caption       *string   `json:"caption"`
	CuratedBy     int       `json:"curated_by"`
	CuratedAt     time.Time `json:"curated_at"`
}

type PosterResponse struct {
	DayNumber int    `json:"day_number"`
	URL       string `json:"url"`
}

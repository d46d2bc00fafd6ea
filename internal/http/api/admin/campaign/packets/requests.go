package packets

// ReplaceCampaignRequest is the full-year curation body. All 30 entries
// must be present; unassigned days simply carry no institution id.
type ReplaceCampaignRequest struct {
	StartDate string                 `json:"start_date" binding:"required"` // YYYY-MM-DD, day 1 of the campaign
	Entries   []CampaignEntryRequest `json:"entries" binding:"required"`
}

type CampaignEntryRequest struct {
	DayNumber     int     `json:"day_number" binding:"required,min=1,max=30"`
	InstitutionID *int    `json:"institution_id"`
	Caption       *string `json:"caption"`
}

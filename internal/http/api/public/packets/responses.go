package packets

// RESPONSES FOR /api/public/*

type InstitutionResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
	State     string `json:"state"`
	City      string `json:"city"`
	QRPayload string `json:"qr_payload"`
}

// SlotResponse is one cell of the public 30-day grid. Institution and
// Caption are nil for unassigned days.
type SlotResponse struct {
	DayNumber   int                  `json:"day_number"`
	Date        string               `json:"date"`
	IsToday     bool                 `json:"is_today"`
	IsPast      bool                 `json:"is_past"`
	Caption     *string              `json:"caption,omitempty"`
	Institution *InstitutionResponse `json:"institution,omitempty"`
}

type ScheduleResponse struct {
	Year int            `json:"year"`
	Days []SlotResponse `json:"days"`
}

type FeaturedResponse struct {
	Date     string        `json:"date"`
	Featured *FeaturedSlot `json:"featured"`
}

type FeaturedSlot struct {
	DayNumber   int                 `json:"day_number"`
	Caption     *string             `json:"caption,omitempty"`
	Institution InstitutionResponse `json:"institution"`
}

type CountdownResponse struct {
	Applicable bool   `json:"applicable"`
	Days       int    `json:"days"`
	Hours      int    `json:"hours"`
	Minutes    int    `json:"minutes"`
	StartsAt   string `json:"starts_at,omitempty"`
}

package model

import "time"

// Institution is a charitable institution in the public directory.
// The campaign core only ever reads these rows.
type Institution struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Category  string    `db:"category" json:"category"`
	State     string    `db:"state" json:"state"`
	City      string    `db:"city" json:"city"`
	QRPayload string    `db:"qr_payload" json:"qr_payload"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/model"
)

// ReplaceCampaign swaps a year's full 30-slot curation in one transaction:
// delete every existing row for the year, insert the new assigned rows,
// commit. Entries without an institution are dropped before persisting, so
// absence always means "unassigned". Readers observe either the full old
// set or the full new set, never a mixture; a failed transaction leaves
// the previously committed schedule intact.
//
// Concurrent replaces for the same year are not serialized here; the last
// committed transaction wins.
func ReplaceCampaign(year int, entries []model.CampaignEntry, curatedBy int) (int, error) {
	tx, err := DB.Beginx()
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("ReplaceCampaign begin failed")
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM campaign_days WHERE year = $1;`, year); err != nil {
		log.Error().Err(err).Int("year", year).Msg("ReplaceCampaign delete failed")
		return 0, err
	}

	const insert = `
	INSERT INTO campaign_days
	  (year, day_number, featured_date, institution_id, caption, curated_by, curated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now());`

	persisted := 0
	for _, e := range entries {
		if e.InstitutionID == nil {
			continue
		}
		if _, err := tx.Exec(insert, year, e.DayNumber, e.FeaturedDate, *e.InstitutionID, e.Caption, curatedBy); err != nil {
			log.Error().Err(err).Int("year", year).Int("day_number", e.DayNumber).Msg("ReplaceCampaign insert failed")
			return 0, err
		}
		persisted++
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Int("year", year).Msg("ReplaceCampaign commit failed")
		return 0, err
	}
	return persisted, nil
}

// GetCampaign returns a year's persisted days ordered by day number.
// An empty slice, not an error, when nothing is curated yet.
func GetCampaign(year int) ([]model.CampaignDay, error) {
	var out []model.CampaignDay
	const q = `
	SELECT year, day_number, featured_date, institution_id, caption, curated_by, curated_at
	  FROM campaign_days
	 WHERE year = $1
	 ORDER BY day_number;`
	if err := DB.Select(&out, q, year); err != nil {
		log.Error().Err(err).Int("year", year).Msg("GetCampaign failed")
		return nil, err
	}
	return out, nil
}

// GetFeaturedByDate returns the slot featured on the given YYYY-MM-DD
// date joined with its institution, or nil when no day is featured.
func GetFeaturedByDate(date string) (*model.FeaturedDay, error) {
	var f model.FeaturedDay
	const q = `
	SELECT cd.year, cd.day_number, cd.featured_date, cd.institution_id, cd.caption,
	       cd.curated_by, cd.curated_at,
	       i.name       AS institution_name,
	       i.slug       AS institution_slug,
	       i.category   AS institution_category,
	       i.state      AS institution_state,
	       i.city       AS institution_city,
	       i.qr_payload AS institution_qr_payload
	  FROM campaign_days cd
	  JOIN institutions i ON i.id = cd.institution_id
	 WHERE cd.featured_date = $1;`
	if err := DB.Get(&f, q, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Str("date", date).Msg("GetFeaturedByDate failed")
		return nil, err
	}
	return &f, nil
}

package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/model"
)

// The institution directory is maintained elsewhere; the campaign service
// only reads it when materializing schedule slots.

func ListInstitutions(state, category string) ([]model.Institution, error) {
	var out []model.Institution
	const q = `
	SELECT id, name, slug, category, state, city, qr_payload, created_at, updated_at
	  FROM institutions
	 WHERE ($1 = '' OR state = $1)
	   AND ($2 = '' OR category = $2)
	 ORDER BY name;`
	if err := DB.Select(&out, q, state, category); err != nil {
		log.Error().Err(err).Msg("ListInstitutions failed")
		return nil, err
	}
	return out, nil
}

func GetInstitutionByID(id int) (*model.Institution, error) {
	var inst model.Institution
	const q = `
	SELECT id, name, slug, category, state, city, qr_payload, created_at, updated_at
	  FROM institutions
	 WHERE id = $1;`
	if err := DB.Get(&inst, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("institution_id", id).Msg("GetInstitutionByID failed")
		return nil, err
	}
	return &inst, nil
}

func GetInstitutionBySlug(slug string) (*model.Institution, error) {
	var inst model.Institution
	const q = `
	SELECT id, name, slug, category, state, city, qr_payload, created_at, updated_at
	  FROM institutions
	 WHERE slug = $1;`
	if err := DB.Get(&inst, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("slug", slug).Msg("GetInstitutionBySlug failed")
		return nil, err
	}
	return &inst, nil
}

// exposes a Store interface that is passed to API handlers instead of the
// package-level functions, so tests can substitute a stub.
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/amanah-digital/ramadan30/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// campaign functions
	ReplaceCampaign(year int, entries []model.CampaignEntry, curatedBy int) (int, error)
	GetCampaign(year int) ([]model.CampaignDay, error)
	GetFeaturedByDate(date string) (*model.FeaturedDay, error)

	// institution directory (read-only)
	ListInstitutions(state, category string) ([]model.Institution, error)
	GetInstitutionByID(id int) (*model.Institution, error)
	GetInstitutionBySlug(slug string) (*model.Institution, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	return GetUserByEmail(email)
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	return GetUserByID(id)
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) ReplaceCampaign(year int, entries []model.CampaignEntry, curatedBy int) (int, error) {
	return ReplaceCampaign(year, entries, curatedBy)
}

func (s *pgStore) GetCampaign(year int) ([]model.CampaignDay, error) {
	return GetCampaign(year)
}

func (s *pgStore) GetFeaturedByDate(date string) (*model.FeaturedDay, error) {
	return GetFeaturedByDate(date)
}

func (s *pgStore) ListInstitutions(state, category string) ([]model.Institution, error) {
	return ListInstitutions(state, category)
}

func (s *pgStore) GetInstitutionByID(id int) (*model.Institution, error) {
	return GetInstitutionByID(id)
}

func (s *pgStore) GetInstitutionBySlug(slug string) (*model.Institution, error) {
	return GetInstitutionBySlug(slug)
}

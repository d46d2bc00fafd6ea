package endpoints

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanah-digital/ramadan30/internal/db"
	"github.com/amanah-digital/ramadan30/internal/falak"
	"github.com/amanah-digital/ramadan30/internal/hijri"
	"github.com/amanah-digital/ramadan30/internal/http/api"
	"github.com/amanah-digital/ramadan30/internal/http/api/public/packets"
	"github.com/amanah-digital/ramadan30/internal/model"
	"github.com/amanah-digital/ramadan30/internal/schedule"
)

// fixedLunar serves one hard-coded lunar calendar so the countdown is
// deterministic.
type fixedLunar struct {
	today hijri.Date
}

func (f fixedLunar) Today(time.Time) (hijri.Date, error) { return f.today, nil }

func (f fixedLunar) ToCivil(d hijri.Date) (time.Time, error) {
	if d.Month != hijri.Ramadan || d.Day != 1 {
		return time.Time{}, errors.New("unexpected lunar date")
	}
	switch d.Year {
	case 1447:
		return time.Date(2026, time.March, 19, 0, 0, 0, 0, time.UTC), nil
	case 1448:
		return time.Date(2027, time.March, 8, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, errors.New("unexpected lunar year")
}

func (f fixedLunar) DaysInMonth(int, int) (int, error) { return 30, nil }

type fakeStore struct {
	campaign     []model.CampaignDay
	featured     *model.FeaturedDay
	institutions map[int]*model.Institution
}

func (s *fakeStore) CreateUser(string, string, *string) (int, error) { return 0, errors.New("ro") }
func (s *fakeStore) GetUserByEmail(string) (*model.User, error)      { return nil, errors.New("ro") }
func (s *fakeStore) GetUserByID(int) (*model.User, error)            { return nil, errors.New("ro") }
func (s *fakeStore) UpdateUserProfile(int, string, *string) error    { return errors.New("ro") }
func (s *fakeStore) ReplaceCampaign(int, []model.CampaignEntry, int) (int, error) {
	return 0, errors.New("ro")
}

func (s *fakeStore) GetCampaign(int) ([]model.CampaignDay, error) { return s.campaign, nil }

func (s *fakeStore) GetFeaturedByDate(date string) (*model.FeaturedDay, error) {
	if s.featured != nil && s.featured.FeaturedDate == date {
		return s.featured, nil
	}
	return nil, nil
}

func (s *fakeStore) ListInstitutions(state, category string) ([]model.Institution, error) {
	out := []model.Institution{}
	for _, inst := range s.institutions {
		if state != "" && inst.State != state {
			continue
		}
		if category != "" && inst.Category != category {
			continue
		}
		out = append(out, *inst)
	}
	return out, nil
}

func (s *fakeStore) GetInstitutionByID(id int) (*model.Institution, error) {
	if inst, ok := s.institutions[id]; ok {
		return inst, nil
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) GetInstitutionBySlug(slug string) (*model.Institution, error) {
	for _, inst := range s.institutions {
		if inst.Slug == slug {
			return inst, nil
		}
	}
	return nil, sql.ErrNoRows
}

func testInstitution(id int) *model.Institution {
	return &model.Institution{
		ID: id, Name: "Masjid Al-Amin", Slug: "masjid-al-amin",
		Category: "mosque", State: "Selangor", City: "Shah Alam",
		QRPayload: "00020101021226",
	}
}

func newPublicRouter(store db.Store, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	zone := time.FixedZone("MYT", 8*3600)

	mapper := schedule.NewMapper(zone)
	mapper.Now = func() time.Time { return now }

	resolver := falak.NewStartResolver(fixedLunar{today: hijri.Date{Year: 1447, Month: 8, Day: 10}}, zone)
	resolver.Now = func() time.Time { return now }

	location := falak.Location{Latitude: 3.1390, Longitude: 101.6869}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/public"},
		CampaignModule(store, mapper, resolver, location),
		InstitutionModule(store))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func persistedDay(year, n int, date string, institutionID int) model.CampaignDay {
	return model.CampaignDay{
		Year: year, DayNumber: n, FeaturedDate: date, InstitutionID: institutionID,
	}
}

func TestGetScheduleExpandsSparseRows(t *testing.T) {
	zone := time.FixedZone("MYT", 8*3600)
	now := time.Date(2026, time.March, 25, 10, 0, 0, 0, zone)
	store := &fakeStore{
		campaign:     []model.CampaignDay{persistedDay(2026, 5, "2026-03-23", 7)},
		institutions: map[int]*model.Institution{7: testInstitution(7)},
	}
	r := newPublicRouter(store, now)

	w := get(r, "/api/public/schedule/2026")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2026, resp.Year)
	require.Len(t, resp.Days, schedule.CampaignDays)

	// Row for day 5 rewinds to a day-1 date of 2026-03-19.
	assert.Equal(t, "2026-03-19", resp.Days[0].Date)
	assert.Equal(t, "2026-04-17", resp.Days[29].Date)

	day5 := resp.Days[4]
	require.NotNil(t, day5.Institution)
	assert.Equal(t, "masjid-al-amin", day5.Institution.Slug)
	assert.True(t, day5.IsPast)

	day7 := resp.Days[6]
	assert.True(t, day7.IsToday)
	assert.Nil(t, day7.Institution)
	assert.False(t, day7.IsPast)

	day8 := resp.Days[7]
	assert.False(t, day8.IsToday)
	assert.False(t, day8.IsPast)
}

func TestGetScheduleMissingInstitutionRendersGap(t *testing.T) {
	zone := time.FixedZone("MYT", 8*3600)
	now := time.Date(2026, time.March, 25, 10, 0, 0, 0, zone)
	store := &fakeStore{
		campaign: []model.CampaignDay{
			persistedDay(2026, 3, "2026-03-21", 99), // dangling reference
			persistedDay(2026, 5, "2026-03-23", 7),
		},
		institutions: map[int]*model.Institution{7: testInstitution(7)},
	}
	r := newPublicRouter(store, now)

	w := get(r, "/api/public/schedule/2026")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Days, schedule.CampaignDays)

	assert.Nil(t, resp.Days[2].Institution, "unresolvable institution must render as a gap")
	require.NotNil(t, resp.Days[4].Institution, "healthy slots must be unaffected")
	assert.Equal(t, "masjid-al-amin", resp.Days[4].Institution.Slug)
}

func TestGetScheduleEmptyYear(t *testing.T) {
	r := newPublicRouter(&fakeStore{}, time.Date(2026, time.March, 25, 10, 0, 0, 0, time.UTC))

	w := get(r, "/api/public/schedule/2031")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2031, resp.Year)
	assert.Empty(t, resp.Days)
}

func TestGetTodayFeatured(t *testing.T) {
	zone := time.FixedZone("MYT", 8*3600)
	now := time.Date(2026, time.March, 23, 9, 0, 0, 0, zone)
	caption := "Break fast with us"
	store := &fakeStore{
		featured: &model.FeaturedDay{
			CampaignDay: model.CampaignDay{
				Year: 2026, DayNumber: 5, FeaturedDate: "2026-03-23",
				InstitutionID: 7, Caption: &caption,
			},
			InstitutionName: "Masjid Al-Amin",
			InstitutionSlug: "masjid-al-amin",
			InstitutionQR:   "00020101021226",
		},
	}
	r := newPublicRouter(store, now)

	w := get(r, "/api/public/today")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.FeaturedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-23", resp.Date)
	require.NotNil(t, resp.Featured)
	assert.Equal(t, 5, resp.Featured.DayNumber)
	assert.Equal(t, "00020101021226", resp.Featured.Institution.QRPayload)
}

func TestGetTodayUnassignedDegradesToNull(t *testing.T) {
	now := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	r := newPublicRouter(&fakeStore{}, now)

	w := get(r, "/api/public/today")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.FeaturedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-06-01", resp.Date)
	assert.Nil(t, resp.Featured)
}

func TestGetCountdownInsideWindow(t *testing.T) {
	zone := time.FixedZone("MYT", 8*3600)
	// Ten days out from the 2026-03-18 eve sunset.
	now := time.Date(2026, time.March, 8, 12, 0, 0, 0, zone)
	r := newPublicRouter(&fakeStore{}, now)

	w := get(r, "/api/public/countdown")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.CountdownResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Applicable)
	assert.InDelta(t, 10, resp.Days, 1)
	assert.NotEmpty(t, resp.StartsAt)
}

func TestGetCountdownOutsideWindow(t *testing.T) {
	now := time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)
	r := newPublicRouter(&fakeStore{}, now)

	w := get(r, "/api/public/countdown")
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.CountdownResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Applicable)
	assert.Empty(t, resp.StartsAt)
}

func TestGetCountdownOffsetValidation(t *testing.T) {
	now := time.Date(2026, time.March, 8, 12, 0, 0, 0, time.UTC)
	r := newPublicRouter(&fakeStore{}, now)

	w := get(r, "/api/public/countdown?offset=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/public/countdown?offset=480")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInstitutionDirectory(t *testing.T) {
	store := &fakeStore{institutions: map[int]*model.Institution{7: testInstitution(7)}}
	r := newPublicRouter(store, time.Now())

	w := get(r, "/api/public/institutions")
	require.Equal(t, http.StatusOK, w.Code)
	var list []packets.InstitutionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = get(r, "/api/public/institutions?state=Johor")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)

	w = get(r, "/api/public/institutions/masjid-al-amin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "00020101021226")

	w = get(r, "/api/public/institutions/no-such-slug")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

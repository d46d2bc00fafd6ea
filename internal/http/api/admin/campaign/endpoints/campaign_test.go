package endpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanah-digital/ramadan30/internal/http/api"
	"github.com/amanah-digital/ramadan30/internal/http/middleware"
	"github.com/amanah-digital/ramadan30/internal/model"
	"github.com/amanah-digital/ramadan30/internal/schedule"
)

const testSecret = "test-secret"

// stubStore records the last ReplaceCampaign call and serves one fixed
// curator account for the JWT middleware.
type stubStore struct {
	replacedYear    int
	replacedEntries []model.CampaignEntry
	replacedBy      int
	replaceErr      error
	campaign        []model.CampaignDay
}

func (s *stubStore) CreateUser(string, string, *string) (int, error) { return 0, errors.New("ro") }
func (s *stubStore) GetUserByEmail(string) (*model.User, error)      { return nil, errors.New("ro") }
func (s *stubStore) GetUserByID(id int) (*model.User, error) {
	if id != 1 {
		return nil, errors.New("not found")
	}
	return &model.User{ID: 1, Email: "curator@example.com"}, nil
}
func (s *stubStore) UpdateUserProfile(int, string, *string) error { return errors.New("ro") }

func (s *stubStore) ReplaceCampaign(year int, entries []model.CampaignEntry, curatedBy int) (int, error) {
	if s.replaceErr != nil {
		return 0, s.replaceErr
	}
	s.replacedYear, s.replacedEntries, s.replacedBy = year, entries, curatedBy
	persisted := 0
	for _, e := range entries {
		if e.InstitutionID != nil {
			persisted++
		}
	}
	return persisted, nil
}

func (s *stubStore) GetCampaign(int) ([]model.CampaignDay, error)         { return s.campaign, nil }
func (s *stubStore) GetFeaturedByDate(string) (*model.FeaturedDay, error) { return nil, nil }
func (s *stubStore) ListInstitutions(string, string) ([]model.Institution, error) {
	return nil, nil
}
func (s *stubStore) GetInstitutionByID(int) (*model.Institution, error) {
	return nil, errors.New("not found")
}
func (s *stubStore) GetInstitutionBySlug(string) (*model.Institution, error) {
	return nil, errors.New("not found")
}

type stubAssets struct {
	savedName string
}

func (s *stubAssets) SaveFile(file *multipart.FileHeader, filename string) (string, error) {
	s.savedName = filename
	return "/uploads/" + filename, nil
}

type stubNotifier struct {
	year, persisted int
	calls           int
}

func (n *stubNotifier) CampaignChanged(year, persisted int) {
	n.year, n.persisted, n.calls = year, persisted, n.calls+1
}

func newCampaignRouter(store *stubStore, assets *stubAssets, notifier *stubNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mapper := schedule.NewMapper(time.FixedZone("MYT", 8*3600))
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin", Auth: true, SecretKey: testSecret, Store: store,
	}, CampaignModule(store, mapper, assets, notifier))
	return r
}

func curatorToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateJWT(1, testSecret)
	require.NoError(t, err)
	return token
}

func putJSON(r *gin.Engine, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func fullYearBody(startDate string, assigned map[int]int) gin.H {
	entries := make([]gin.H, 0, 30)
	for n := 1; n <= 30; n++ {
		e := gin.H{"day_number": n}
		if inst, ok := assigned[n]; ok {
			e["institution_id"] = inst
		}
		entries = append(entries, e)
	}
	return gin.H{"start_date": startDate, "entries": entries}
}

func TestReplaceCampaignComputesFeaturedDates(t *testing.T) {
	store := &stubStore{}
	notifier := &stubNotifier{}
	r := newCampaignRouter(store, &stubAssets{}, notifier)

	w := putJSON(r, "/api/admin/campaign/2026", curatorToken(t),
		fullYearBody("2026-03-19", map[int]int{5: 7}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Equal(t, 2026, store.replacedYear)
	require.Equal(t, 1, store.replacedBy)
	require.Len(t, store.replacedEntries, 30)

	assert.Equal(t, "2026-03-19", store.replacedEntries[0].FeaturedDate)
	assert.Equal(t, "2026-03-23", store.replacedEntries[4].FeaturedDate)
	assert.Equal(t, "2026-04-17", store.replacedEntries[29].FeaturedDate)
	require.NotNil(t, store.replacedEntries[4].InstitutionID)
	assert.Equal(t, 7, *store.replacedEntries[4].InstitutionID)
	assert.Nil(t, store.replacedEntries[5].InstitutionID)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, 2026, notifier.year)
	assert.Equal(t, 1, notifier.persisted)

	var resp struct {
		Persisted int `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Persisted)
}

func TestReplaceCampaignValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
		body gin.H
	}{
		{
			name: "year out of range",
			path: "/api/admin/campaign/1999",
			body: fullYearBody("2026-03-19", nil),
		},
		{
			name: "non-numeric year",
			path: "/api/admin/campaign/soon",
			body: fullYearBody("2026-03-19", nil),
		},
		{
			name: "malformed start date",
			path: "/api/admin/campaign/2026",
			body: fullYearBody("19/03/2026", nil),
		},
		{
			name: "too few entries",
			path: "/api/admin/campaign/2026",
			body: gin.H{"start_date": "2026-03-19", "entries": []gin.H{{"day_number": 1}}},
		},
		{
			name: "duplicate day number",
			path: "/api/admin/campaign/2026",
			body: func() gin.H {
				b := fullYearBody("2026-03-19", nil)
				entries := b["entries"].([]gin.H)
				entries[1]["day_number"] = 1
				return b
			}(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{}
			notifier := &stubNotifier{}
			r := newCampaignRouter(store, &stubAssets{}, notifier)

			w := putJSON(r, tc.path, curatorToken(t), tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Zero(t, store.replacedYear, "validation failure must not reach the store")
			assert.Zero(t, notifier.calls)
		})
	}
}

func TestReplaceCampaignStoreFailure(t *testing.T) {
	store := &stubStore{replaceErr: errors.New("db down")}
	notifier := &stubNotifier{}
	r := newCampaignRouter(store, &stubAssets{}, notifier)

	w := putJSON(r, "/api/admin/campaign/2026", curatorToken(t),
		fullYearBody("2026-03-19", map[int]int{1: 7}))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, notifier.calls, "failed replace must not broadcast a change")
}

func TestReplaceCampaignRequiresAuth(t *testing.T) {
	r := newCampaignRouter(&stubStore{}, &stubAssets{}, &stubNotifier{})

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(fullYearBody("2026-03-19", nil))
	req := httptest.NewRequest(http.MethodPut, "/api/admin/campaign/2026", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func postPoster(t *testing.T, r *gin.Engine, path, token, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("poster", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadPoster(t *testing.T) {
	assets := &stubAssets{}
	r := newCampaignRouter(&stubStore{}, assets, &stubNotifier{})

	w := postPoster(t, r, "/api/admin/campaign/2026/days/5/poster", curatorToken(t), "day5.PNG")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, fmt.Sprintf("campaign/%d/day-%02d.png", 2026, 5), assets.savedName)
	assert.Contains(t, w.Body.String(), "/uploads/campaign/2026/day-05.png")
}

func TestUploadPosterRejectsBadInput(t *testing.T) {
	assets := &stubAssets{}
	r := newCampaignRouter(&stubStore{}, assets, &stubNotifier{})
	token := curatorToken(t)

	w := postPoster(t, r, "/api/admin/campaign/2026/days/31/poster", token, "day.png")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postPoster(t, r, "/api/admin/campaign/2026/days/5/poster", token, "notes.pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, assets.savedName)
}

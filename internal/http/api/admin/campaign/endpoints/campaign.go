package endpoints

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/db"
	"github.com/amanah-digital/ramadan30/internal/http/api"
	"github.com/amanah-digital/ramadan30/internal/http/api/admin/campaign/packets"
	"github.com/amanah-digital/ramadan30/internal/model"
	"github.com/amanah-digital/ramadan30/internal/redis"
	"github.com/amanah-digital/ramadan30/internal/schedule"
	"github.com/amanah-digital/ramadan30/internal/storage"
)

// Curated years outside this range are rejected before touching storage.
const (
	minCampaignYear = 2000
	maxCampaignYear = 2200
)

// ChangeNotifier receives a signal after every successful replace so
// display surfaces can drop their cached schedule.
type ChangeNotifier interface {
	CampaignChanged(year, persisted int)
}

type CampaignController struct {
	store    db.Store
	mapper   *schedule.Mapper
	assets   storage.Storage
	notifier ChangeNotifier
}

func NewCampaignController(store db.Store, mapper *schedule.Mapper, assets storage.Storage, notifier ChangeNotifier) *CampaignController {
	return &CampaignController{store: store, mapper: mapper, assets: assets, notifier: notifier}
}

func CampaignModule(store db.Store, mapper *schedule.Mapper, assets storage.Storage, notifier ChangeNotifier) api.Module {
	ctl := NewCampaignController(store, mapper, assets, notifier)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/campaign/:year", ctl.getCampaign)
		c.PUT("/campaign/:year", ctl.replaceCampaign)
		c.POST("/campaign/:year/days/:day/poster", ctl.uploadPoster)
	})
}

func (cc *CampaignController) getCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	year, apiErr := yearParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	days, err := cc.store.GetCampaign(year)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load campaign"}
	}

	response := make([]packets.CampaignDayResponse, 0, len(days))
	for _, d := range days {
		response = append(response, packets.CampaignDayResponse{
			Year:          d.Year,
			DayNumber:     d.DayNumber,
			FeaturedDate:  d.FeaturedDate,
			InstitutionID: d.InstitutionID,
			Caption:       d.Caption,
			CuratedBy:     d.CuratedBy,
			CuratedAt:     d.CuratedAt,
		})
	}
	return response, nil
}

// PUT /api/admin/campaign/:year
//
// Validates shape before touching storage: a validation failure aborts
// with no mutation attempted. The store then swaps the year's full slot
// set in one transaction.
func (cc *CampaignController) replaceCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	year, apiErr := yearParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReplaceCampaignRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	start, err := cc.mapper.ParseDate(request.StartDate)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start_date must be YYYY-MM-DD"}
	}

	if len(request.Entries) != schedule.CampaignDays {
		msg := fmt.Sprintf("exactly %d entries required, got %d", schedule.CampaignDays, len(request.Entries))
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: msg}
	}

	seen := make(map[int]bool, schedule.CampaignDays)
	entries := make([]model.CampaignEntry, 0, schedule.CampaignDays)
	dates := make([]string, 0, schedule.CampaignDays)
	for _, e := range request.Entries {
		if !schedule.ValidDayNumber(e.DayNumber) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: fmt.Sprintf("day_number %d out of range", e.DayNumber)}
		}
		if seen[e.DayNumber] {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: fmt.Sprintf("duplicate day_number %d", e.DayNumber)}
		}
		seen[e.DayNumber] = true

		date := schedule.ToDateString(cc.mapper.DateForDay(start, e.DayNumber))
		dates = append(dates, date)
		entries = append(entries, model.CampaignEntry{
			DayNumber:     e.DayNumber,
			FeaturedDate:  date,
			InstitutionID: e.InstitutionID,
			Caption:       e.Caption,
		})
	}

	persisted, err := cc.store.ReplaceCampaign(year, entries, user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not replace campaign"}
	}

	redis.InvalidateCampaign(ctx, year, dates...)
	if cc.notifier != nil {
		cc.notifier.CampaignChanged(year, persisted)
	}

	log.Info().Int("year", year).Int("persisted", persisted).Int("curated_by", user.ID).Msg("campaign replaced")
	return packets.ReplaceCampaignResponse{Year: year, Persisted: persisted, Message: "replaced"}, nil
}

// POST /api/admin/campaign/:year/days/:day/poster
func (cc *CampaignController) uploadPoster(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	year, apiErr := yearParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil || !schedule.ValidDayNumber(day) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "day must be between 1 and 30"}
	}

	fileHeader, err := ctx.FormFile("poster")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "poster file is required"}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".webp" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unsupported poster format"}
	}

	filename := fmt.Sprintf("campaign/%d/day-%02d%s", year, day, ext)
	url, err := cc.assets.SaveFile(fileHeader, filename)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("day", day).Msg("poster upload failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store poster"}
	}

	return packets.PosterResponse{DayNumber: day, URL: url}, nil
}

func yearParam(ctx *gin.Context) (int, *api.APIError) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < minCampaignYear || year > maxCampaignYear {
		return 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid year"}
	}
	return year, nil
}

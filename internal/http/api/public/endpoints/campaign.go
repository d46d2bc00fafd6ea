package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/db"
	"github.com/amanah-digital/ramadan30/internal/falak"
	"github.com/amanah-digital/ramadan30/internal/http/api"
	"github.com/amanah-digital/ramadan30/internal/http/api/public/packets"
	"github.com/amanah-digital/ramadan30/internal/model"
	"github.com/amanah-digital/ramadan30/internal/redis"
	"github.com/amanah-digital/ramadan30/internal/schedule"
)

type CampaignController struct {
	store    db.Store
	mapper   *schedule.Mapper
	resolver *falak.StartResolver
	location falak.Location
}

func NewCampaignController(store db.Store, mapper *schedule.Mapper, resolver *falak.StartResolver, location falak.Location) *CampaignController {
	return &CampaignController{store: store, mapper: mapper, resolver: resolver, location: location}
}

// CampaignModule mounts the unauthenticated display-surface endpoints.
func CampaignModule(store db.Store, mapper *schedule.Mapper, resolver *falak.StartResolver, location falak.Location) api.Module {
	ctl := NewCampaignController(store, mapper, resolver, location)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/countdown", ctl.getCountdown)
		c.PUBLIC_GET("/today", ctl.getToday)
		c.PUBLIC_GET("/schedule/:year", ctl.getSchedule)
	})
}

// GET /api/public/schedule/:year
//
// The resolved 30-cell grid for a civil year, with gaps where no
// institution was assigned. Served from a bounded-staleness cache.
func (cc *CampaignController) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid year"}
	}

	var cached packets.ScheduleResponse
	if redis.GetUnmarshalledJSON(ctx, redis.CampaignKey(year), &cached) {
		return cached, nil
	}

	days, err := cc.store.GetCampaign(year)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load schedule"}
	}

	response := packets.ScheduleResponse{Year: year, Days: []packets.SlotResponse{}}
	if len(days) > 0 {
		start, err := cc.startFromPersisted(days[0])
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "corrupt schedule dates"}
		}
		response.Days = cc.buildSlots(start, days)
	}

	redis.SetMarshalledJSON(ctx, redis.CampaignKey(year), response, redis.CampaignTTL)
	return response, nil
}

// GET /api/public/today
//
// Today's featured slot in the platform's fixed reference timezone, or
// featured:null so surfaces can degrade to no card instead of erroring.
func (cc *CampaignController) getToday(ctx *gin.Context) (any, *api.APIError) {
	today := cc.mapper.TodayString()

	var cached packets.FeaturedResponse
	if redis.GetUnmarshalledJSON(ctx, redis.FeaturedKey(today), &cached) {
		return cached, nil
	}

	featured, err := cc.store.GetFeaturedByDate(today)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to resolve today"}
	}

	response := packets.FeaturedResponse{Date: today}
	if featured != nil {
		response.Featured = &packets.FeaturedSlot{
			DayNumber: featured.DayNumber,
			Caption:   featured.Caption,
			Institution: packets.InstitutionResponse{
				ID:        featured.InstitutionID,
				Name:      featured.InstitutionName,
				Slug:      featured.InstitutionSlug,
				Category:  featured.InstitutionCategory,
				State:     featured.InstitutionState,
				City:      featured.InstitutionCity,
				QRPayload: featured.InstitutionQR,
			},
		}
	}

	redis.SetMarshalledJSON(ctx, redis.FeaturedKey(today), response, redis.CampaignTTL)
	return response, nil
}

// GET /api/public/countdown?offset=<minutes>
//
// Live pre-Ramadan countdown. With an offset the location is approximated
// from the client's civil timezone; otherwise the platform's reference
// coordinates are used.
func (cc *CampaignController) getCountdown(ctx *gin.Context) (any, *api.APIError) {
	location := cc.location
	if raw := ctx.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "offset must be minutes east of UTC"}
		}
		location = falak.LocationFromOffset(offset)
	}

	start, err := cc.resolver.NextStart(location)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not resolve ramadan start"}
	}

	status, ok := falak.EvaluateCountdown(cc.mapper.Now(), start, location)
	if !ok {
		return packets.CountdownResponse{Applicable: false}, nil
	}
	return packets.CountdownResponse{
		Applicable: true,
		Days:       status.Days,
		Hours:      status.Hours,
		Minutes:    status.Minutes,
		StartsAt:   start.Format(time.RFC3339),
	}, nil
}

// startFromPersisted rewinds any persisted row to the campaign's day-1
// date; rows always satisfy featuredDate = start + (dayNumber - 1).
func (cc *CampaignController) startFromPersisted(day model.CampaignDay) (time.Time, error) {
	date, err := cc.mapper.ParseDate(day.FeaturedDate)
	if err != nil {
		return time.Time{}, err
	}
	return date.AddDate(0, 0, -(day.DayNumber - 1)), nil
}

// buildSlots never fails: a slot whose institution cannot be loaded is
// rendered as a gap so one bad reference does not take down the grid.
func (cc *CampaignController) buildSlots(start time.Time, days []model.CampaignDay) []packets.SlotResponse {
	institutions := make(map[int]*model.Institution)
	for _, d := range days {
		if _, ok := institutions[d.InstitutionID]; ok {
			continue
		}
		inst, err := cc.store.GetInstitutionByID(d.InstitutionID)
		if err != nil {
			log.Error().Err(err).Int("institution_id", d.InstitutionID).Msg("schedule slot institution lookup failed")
			institutions[d.InstitutionID] = nil
			continue
		}
		institutions[d.InstitutionID] = inst
	}

	slots := cc.mapper.Slots(start, days)
	response := make([]packets.SlotResponse, 0, len(slots))
	for _, s := range slots {
		slot := packets.SlotResponse{
			DayNumber: s.DayNumber,
			Date:      s.Date,
			IsToday:   s.IsToday,
			IsPast:    s.IsPast,
		}
		if s.Entry != nil {
			slot.Caption = s.Entry.Caption
			if inst := institutions[s.Entry.InstitutionID]; inst != nil {
				slot.Institution = &packets.InstitutionResponse{
					ID:        inst.ID,
					Name:      inst.Name,
					Slug:      inst.Slug,
					Category:  inst.Category,
					State:     inst.State,
					City:      inst.City,
					QRPayload: inst.QRPayload,
				}
			}
		}
		response = append(response, slot)
	}
	return response
}

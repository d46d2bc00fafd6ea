package endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanah-digital/ramadan30/internal/db"
	"github.com/amanah-digital/ramadan30/internal/http/api"
	"github.com/amanah-digital/ramadan30/internal/http/api/public/packets"
	"github.com/amanah-digital/ramadan30/internal/model"
)

type InstitutionController struct {
	store db.Store
}

// InstitutionModule mounts the read-only institution directory.
func InstitutionModule(store db.Store) api.Module {
	ctl := &InstitutionController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/institutions", ctl.listInstitutions)
		c.PUBLIC_GET("/institutions/:slug", ctl.getInstitution)
	})
}

// GET /api/public/institutions?state=&category=
func (ic *InstitutionController) listInstitutions(ctx *gin.Context) (any, *api.APIError) {
	list, err := ic.store.ListInstitutions(ctx.Query("state"), ctx.Query("category"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list institutions"}
	}

	response := make([]packets.InstitutionResponse, 0, len(list))
	for _, inst := range list {
		response = append(response, toInstitutionResponse(&inst))
	}
	return response, nil
}

// GET /api/public/institutions/:slug
func (ic *InstitutionController) getInstitution(ctx *gin.Context) (any, *api.APIError) {
	inst, err := ic.store.GetInstitutionBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "institution not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load institution"}
	}
	return toInstitutionResponse(inst), nil
}

func toInstitutionResponse(inst *model.Institution) packets.InstitutionResponse {
	return packets.InstitutionResponse{
		ID:        inst.ID,
		Name:      inst.Name,
		Slug:      inst.Slug,
		Category:  inst.Category,
		State:     inst.State,
		City:      inst.City,
		QRPayload: inst.QRPayload,
	}
}

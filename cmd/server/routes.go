package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/amanah-digital/ramadan30/internal/db"
	"github.com/amanah-digital/ramadan30/internal/falak"
	"github.com/amanah-digital/ramadan30/internal/http/api"
	authapi "github.com/amanah-digital/ramadan30/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/amanah-digital/ramadan30/internal/http/api/admin/campaign/endpoints"
	publicapi "github.com/amanah-digital/ramadan30/internal/http/api/public/endpoints"
	"github.com/amanah-digital/ramadan30/internal/schedule"
	"github.com/amanah-digital/ramadan30/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	posterStorage storage.Storage,
	mapper *schedule.Mapper,
	resolver *falak.StartResolver,
	location falak.Location,
	notifier adminapi.ChangeNotifier,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.CampaignModule(store, mapper, posterStorage, notifier),
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/public",
	},
		publicapi.CampaignModule(store, mapper, resolver, location),
		publicapi.InstitutionModule(store),
	)

	// Locally stored posters
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/broadcast"
	"github.com/amanah-digital/ramadan30/internal/config"
	"github.com/amanah-digital/ramadan30/internal/db"
	"github.com/amanah-digital/ramadan30/internal/falak"
	adminapi "github.com/amanah-digital/ramadan30/internal/http/api/admin/campaign/endpoints"
	"github.com/amanah-digital/ramadan30/internal/hijri"
	"github.com/amanah-digital/ramadan30/internal/redis"
	"github.com/amanah-digital/ramadan30/internal/schedule"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	env := LoadEnvironment()

	campaign, err := config.LoadCampaign()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load campaign config")
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore(db.DB)
	posterStorage := InitStorage(env)

	location := falak.Location{Latitude: campaign.Latitude, Longitude: campaign.Longitude}
	mapper := schedule.NewMapper(campaign.Zone)
	resolver := falak.NewStartResolver(hijri.UmmAlQura{}, campaign.Zone)

	// MQTT is optional: without a broker the API still serves everything,
	// display surfaces just poll instead of being pushed to.
	var notifier adminapi.ChangeNotifier
	if env.MQTTBrokerURL != "" {
		publisher, err := broadcast.NewPublisher(env.MQTTBrokerURL, "ramadan30-server")
		if err != nil {
			log.Error().Err(err).Msg("mqtt connect failed, continuing without broadcast")
		} else {
			defer publisher.Close()
			publisher.StartCountdownFeed(context.Background(), resolver, location)
			notifier = publisher
		}
	}

	r := gin.Default()
	RegisterRoutes(r, env, store, posterStorage, mapper, resolver, location, notifier)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

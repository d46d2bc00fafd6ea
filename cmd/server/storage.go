package main

import (
	"github.com/rs/zerolog/log"

	"github.com/amanah-digital/ramadan30/internal/storage"
)

// InitStorage selects and returns the configured poster storage backend
func InitStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", env.SpacesCDNURL).Msg("using Spaces storage for posters")
		return spacesStorage
	}

	log.Info().Msg("using local poster storage in ./uploads")
	return storage.NewLocalStorage("./uploads")
}

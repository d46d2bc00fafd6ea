package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// CampaignTTL bounds how stale a cached campaign read may be.
const CampaignTTL = 60 * time.Second

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// CampaignKey is the cache key for a year's resolved schedule.
func CampaignKey(year int) string {
	return fmt.Sprintf("campaign:%d", year)
}

// FeaturedKey is the cache key for a date's featured slot.
func FeaturedKey(date string) string {
	return "campaign:featured:" + date
}

// SetMarshalledJSON caches v as JSON. Failures are logged, not returned:
// the cache is best effort.
func SetMarshalledJSON(ctx context.Context, key string, v any, expiration time.Duration) {
	if Rdb == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to marshal cache value")
		return
	}
	if err := Rdb.Set(ctx, key, payload, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to add key to redis")
	}
}

// GetUnmarshalledJSON loads a cached JSON value into dest. Returns false
// on a miss or any error, so callers always fall through to the store.
func GetUnmarshalledJSON(ctx context.Context, key string, dest any) bool {
	if Rdb == nil {
		return false
	}
	raw, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cached value")
		return false
	}
	return true
}

// InvalidateCampaign drops every cached read for a year; called after a
// successful ReplaceCampaign so readers converge on the new schedule.
func InvalidateCampaign(ctx context.Context, year int, dates ...string) {
	if Rdb == nil {
		return
	}
	keys := []string{CampaignKey(year)}
	for _, d := range dates {
		keys = append(keys, FeaturedKey(d))
	}
	if err := Rdb.Del(ctx, keys...).Err(); err != nil {
		log.Error().Err(err).Int("year", year).Msg("failed to invalidate campaign cache")
	}
}

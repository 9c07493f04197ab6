package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/rotaops/conflict-api-go/pkg/models"
)

// Heatmap computation is cheap but stored-mode reads hit it on every
// dashboard refresh, so results are cached briefly and invalidated on
// every shift or availability write. With no REDIS_ADDR the cache is a
// no-op and every call recomputes.

const heatmapTTL = 5 * time.Minute

var rdb *redis.Client

// Init connects to Redis when REDIS_ADDR is set. Safe to skip entirely.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: os.Getenv("REDIS_USERNAME"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	log.Info().Str("addr", addr).Msg("heatmap cache enabled")
}

// Enabled reports whether a Redis client is configured
func Enabled() bool {
	return rdb != nil
}

func heatmapKey(weekStart, weekEnd string) string {
	return "heatmap:" + weekStart + ":" + weekEnd
}

// GetHeatmap returns a cached heatmap for the window, ok=false on miss
func GetHeatmap(ctx context.Context, weekStart, weekEnd string) (models.HeatmapData, bool) {
	var data models.HeatmapData
	if rdb == nil {
		return data, false
	}

	raw, err := rdb.Get(ctx, heatmapKey(weekStart, weekEnd)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("heatmap cache read failed")
		}
		return data, false
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		log.Warn().Err(err).Msg("discarding undecodable cached heatmap")
		return models.HeatmapData{}, false
	}
	return data, true
}

// SetHeatmap stores a computed heatmap for its window
func SetHeatmap(ctx context.Context, data models.HeatmapData) {
	if rdb == nil {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return
	}

	key := heatmapKey(data.Meta.WeekStart, data.Meta.WeekEnd)
	if err := rdb.Set(ctx, key, raw, heatmapTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("heatmap cache write failed")
	}
}

// InvalidateHeatmaps drops every cached window. Called after any shift or
// availability mutation; windows overlap so targeted eviction is not worth
// the bookkeeping.
func InvalidateHeatmaps(ctx context.Context) {
	if rdb == nil {
		return
	}

	iter := rdb.Scan(ctx, 0, "heatmap:*", 100).Iterator()
	for iter.Next(ctx) {
		rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("heatmap cache invalidation failed")
	}
}

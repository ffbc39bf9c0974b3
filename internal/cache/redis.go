package cache

import (
	"context"
	"encoding/json"
	"log"

	"github.com/elsouk/elsouk/internal/geo"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "commune:coords:"

// absentMarker records a commune with no resolvable coordinates.
const absentMarker = "absent"

// Redis is a coordinate cache shared across service instances. Errors from
// redis degrade to cache misses; the caller falls through to the database.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis-backed coordinate cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get returns the cached coordinates for a key.
func (r *Redis) Get(ctx context.Context, key string) (*geo.Coordinates, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("coordinate cache: redis get failed for %q: %v", key, err)
		}
		return nil, false
	}

	if raw == absentMarker {
		return nil, true
	}

	var coords geo.Coordinates
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		log.Printf("coordinate cache: corrupt entry for %q: %v", key, err)
		return nil, false
	}
	return &coords, true
}

// Set stores coordinates for a key. A nil value records a failed lookup.
func (r *Redis) Set(ctx context.Context, key string, coords *geo.Coordinates) {
	value := absentMarker
	if coords != nil {
		encoded, err := json.Marshal(coords)
		if err != nil {
			return
		}
		value = string(encoded)
	}

	// Coordinates are reference data, so entries never expire.
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		log.Printf("coordinate cache: redis set failed for %q: %v", key, err)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sanxing/internal/observability"
)

// Key inventory. Every cache entry the service writes goes through one of
// these builders so the keyspace stays enumerable.
const (
	UserKeyPrefix  = "user:%d"
	DailyKeyPrefix = "daily:%s"
)

const (
	UserTTL = 5 * time.Minute
	// DailyTTL caps the daily selection entry; the selection is
	// deterministic per calendar date so a generous TTL is safe, but the
	// corpus can change, so the entry is not pinned until midnight.
	DailyTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// DailyKey keys the daily question selection by effective seed date.
func DailyKey(seedDate string) string {
	return fmt.Sprintf(DailyKeyPrefix, seedDate)
}

// GetJSON reads key and unmarshals the stored JSON into dest. It reports
// whether the key was present. With no Redis client configured every read
// is a miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		observability.CacheLookups.WithLabelValues("miss").Inc()
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	observability.CacheLookups.WithLabelValues("hit").Inc()
	return true, nil
}

// SetJSON marshals v and stores it under key with the given TTL. A nil
// client makes this a no-op.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, raw, ttl).Err()
}

// Aside is the read-through path: serve from cache when present, otherwise
// run fetch (which must write into dest) and store what it produced. Cache
// failures on either side degrade to the fetch result and are never
// surfaced to the caller.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if found, err := GetJSON(ctx, key, dest); err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate drops a single key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"zephyr/internal/middleware"
	"zephyr/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements cache-aside: dest is filled from key when present,
// otherwise fetch fills dest and the result is written back with ttl.
// Redis failures fall through to fetch; fetch errors are returned unchanged
// and nothing is cached.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	family := keyFamily(key)
	if client == nil {
		observability.CacheLookups.WithLabelValues(family, "disabled").Inc()
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.CacheLookups.WithLabelValues(family, "hit").Inc()
			return nil
		}
		middleware.Logger.WarnContext(ctx, "Discarding undecodable cache entry", slog.String("key", key))
		client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		middleware.Logger.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	observability.CacheLookups.WithLabelValues(family, "miss").Inc()
	if err := fetch(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

func keyFamily(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

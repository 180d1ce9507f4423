package forecast

import (
	"context"
	"time"
)

// Cache holds computed forecasts. cache.RedisClient satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheKey is shared with the sale path, which drops the entry on every sale.
func CacheKey(productName string) string {
	return "forecast:" + productName
}

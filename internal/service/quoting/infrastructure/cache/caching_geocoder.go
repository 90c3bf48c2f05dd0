package cache

import (
	"context"
	"time"

	"depotquote/internal/pkg/logger"
	"depotquote/internal/pkg/metrics"
	"depotquote/internal/service/quoting/domain"
	"depotquote/internal/service/quoting/domain/port"
)

const keyPrefix = "geocode:postal:"

// CachingGeocoder 在任意 port.Geocoder 之前加一层缓存。
// 缓存读写失败只记日志，不影响查询；失败的查询不缓存。
type CachingGeocoder struct {
	next  port.Geocoder
	store Store
	ttl   time.Duration
}

// NewCachingGeocoder 在 store 为 nil 时直接返回 next
func NewCachingGeocoder(next port.Geocoder, store Store, ttl time.Duration) port.Geocoder {
	if store == nil {
		return next
	}
	return &CachingGeocoder{next: next, store: store, ttl: ttl}
}

func cacheKey(postalCode string) string {
	return keyPrefix + domain.NormalizePostalCode(postalCode)
}

func (c *CachingGeocoder) Resolve(ctx context.Context, postalCode string) (domain.AddressDetails, error) {
	key := cacheKey(postalCode)

	details, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("geocode cache read failed")
	}
	if ok {
		metrics.GeocodeCache.WithLabelValues("hit").Inc()
		details.PostalCode = postalCode
		return details, nil
	}
	metrics.GeocodeCache.WithLabelValues("miss").Inc()

	details, err = c.next.Resolve(ctx, postalCode)
	if err != nil {
		return details, err
	}

	if err := c.store.Set(ctx, key, details, c.ttl); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("geocode cache write failed")
	}
	return details, nil
}

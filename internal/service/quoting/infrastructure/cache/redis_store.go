package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"depotquote/internal/service/quoting/domain"
)

// Store 是地理编码结果的键值存储
type Store interface {
	Get(ctx context.Context, key string) (domain.AddressDetails, bool, error)
	Set(ctx context.Context, key string, details domain.AddressDetails, ttl time.Duration) error
}

// RedisStore 以 JSON 形式把结果存入 Redis
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (domain.AddressDetails, bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AddressDetails{}, false, nil
	}
	if err != nil {
		return domain.AddressDetails{}, false, errors.Wrapf(err, "redis get %s", key)
	}
	var details domain.AddressDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return domain.AddressDetails{}, false, errors.Wrapf(err, "decode cached %s", key)
	}
	return details, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, details domain.AddressDetails, ttl time.Duration) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return errors.Wrap(err, "encode details")
	}
	return errors.Wrapf(s.rdb.Set(ctx, key, raw, ttl).Err(), "redis set %s", key)
}

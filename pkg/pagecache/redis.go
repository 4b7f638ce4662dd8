package pagecache

import (
	"context"
	"errors"
	"time"

	"github.com/yatube-lab/backend/pkg/xredis"
)

const redisKeyPrefix = "pagecache:"

type redisCache struct {
	client xredis.Client
}

func NewRedisCache(client xredis.Client) *redisCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s, err := c.client.Get(ctx, redisKeyPrefix+key)
	if err != nil {
		if errors.Is(err, xredis.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return []byte(s), true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.SetEx(ctx, redisKeyPrefix+key, string(value), ttl)
}

func (c *redisCache) Clear(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, redisKeyPrefix+"*")
	if err != nil {
		return err
	}

	return c.client.Del(ctx, keys...)
}

package cache

import (
	"errors"
	"fmt"
	"time"

	r "gopkg.in/redis.v5"

	"github.com/sevigo/pr-tracker/internal/core"
)

const prefix = "_PR_TRACKER_"

// RedisCache shares snapshots between replicas.
type RedisCache struct {
	client *r.Client
	ttl    time.Duration
}

// NewRedisCache connects to the redis server at url.
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := r.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := r.NewClient(opts)
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ref core.PRRef) ([]core.CheckResult, bool, error) {
	data, err := c.client.Get(prefix + key(ref)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", ref, err)
	}
	out, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *RedisCache) Set(ref core.PRRef, failing []core.CheckResult) error {
	data, err := encode(failing)
	if err != nil {
		return err
	}
	return c.client.Set(prefix+key(ref), data, c.ttl).Err()
}

func (c *RedisCache) Delete(ref core.PRRef) error {
	return c.client.Del(prefix + key(ref)).Err()
}

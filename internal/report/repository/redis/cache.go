package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"intelligence-srv/internal/report/repository"
	pkgRedis "intelligence-srv/pkg/redis"
)

func (c *implCache) GetContent(ctx context.Context, reportID string) ([]byte, error) {
	v, err := c.client.Get(ctx, contentKeyPrefix+reportID)
	if errors.Is(err, pkgRedis.ErrKeyNotFound) {
		return nil, repository.ErrCacheMiss
	}
	if err != nil {
		c.l.Warnf(ctx, "report.repository.redis.GetContent: %v", err)
		return nil, fmt.Errorf("get content: %w", err)
	}
	return []byte(v), nil
}

func (c *implCache) SetContent(ctx context.Context, reportID string, content []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, contentKeyPrefix+reportID, content, ttl); err != nil {
		c.l.Warnf(ctx, "report.repository.redis.SetContent: %v", err)
		return fmt.Errorf("set content: %w", err)
	}
	return nil
}

func (c *implCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, lockKeyPrefix+key, "1", ttl)
	if err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}
	return ok, nil
}

func (c *implCache) ReleaseLock(ctx context.Context, key string) error {
	if err := c.client.Delete(ctx, lockKeyPrefix+key); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

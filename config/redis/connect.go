package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"intelligence-srv/config"
	"intelligence-srv/pkg/redis"
)

var (
	instance redis.IRedis
	mu       sync.RWMutex
)

// Connect returns the process-wide Redis client, dialing it on first use.
// A failed attempt leaves nothing cached so the next call retries.
func Connect(ctx context.Context, cfg config.RedisConfig) (redis.IRedis, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := redis.NewRedis(redis.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("config.redis.Connect: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("config.redis.Connect: ping: %w", err)
	}

	instance = client
	return instance, nil
}

// GetClient panics when Connect has not succeeded.
func GetClient() redis.IRedis {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("redis client not initialized, call Connect first")
	}
	return instance
}

func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return errors.New("redis client not initialized")
	}
	return instance.Ping(ctx)
}

func Disconnect() error {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		return nil
	}
	err := instance.Close()
	instance = nil
	return err
}

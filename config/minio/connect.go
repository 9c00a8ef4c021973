package minio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"intelligence-srv/config"
	"intelligence-srv/pkg/minio"
)

var (
	instance minio.MinIO
	mu       sync.RWMutex
)

// Connect returns the process-wide MinIO client. The configured bucket is
// created when missing.
func Connect(ctx context.Context, cfg config.MinIOConfig) (minio.MinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	client, err := minio.NewMinIO(minio.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
		Bucket:    cfg.Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("config.minio.Connect: %w", err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("config.minio.Connect: %w", err)
	}
	if err := client.EnsureBucket(ctx, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("config.minio.Connect: bucket %s: %w", cfg.Bucket, err)
	}

	instance = client
	return instance, nil
}

// GetClient panics when Connect has not succeeded.
func GetClient() minio.MinIO {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		panic("minio client not initialized, call Connect first")
	}
	return instance
}

func HealthCheck(ctx context.Context) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return errors.New("minio client not initialized")
	}
	return instance.HealthCheck(ctx)
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

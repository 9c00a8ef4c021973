package rabbitmq

import (
	"errors"
	"fmt"
	"sync"

	"intelligence-srv/config"
	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/rabbitmq"
)

var (
	instance rabbitmq.IRabbitMQ
	mu       sync.RWMutex
)

// Connect dials the broker once per process. The returned connection
// re-dials by itself after a broker restart.
func Connect(cfg config.RabbitMQConfig, l log.Logger) (rabbitmq.IRabbitMQ, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	conn, err := rabbitmq.NewRabbitMQ(rabbitmq.Config{
		URL:                 cfg.URL,
		RetryWithoutTimeout: cfg.RetryWithoutTimeout,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("config.rabbitmq.Connect: %w", err)
	}
	instance = conn
	return instance, nil
}

func HealthCheck() error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return errors.New("rabbitmq connection not initialized")
	}
	if !instance.IsReady() {
		return errors.New("rabbitmq connection is reconnecting")
	}
	return nil
}

func Disconnect() {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		instance.Close()
		instance = nil
	}
}

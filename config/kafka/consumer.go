package kafka

import (
	"errors"
	"fmt"
	"sync"

	"intelligence-srv/config"
	"intelligence-srv/pkg/kafka"
)

var (
	consumer   kafka.IConsumer
	consumerMu sync.Mutex
)

// ConnectConsumer joins cfg.GroupID. Only one group member per process.
func ConnectConsumer(cfg config.KafkaConfig) (kafka.IConsumer, error) {
	consumerMu.Lock()
	defer consumerMu.Unlock()

	if consumer != nil {
		return consumer, nil
	}
	if cfg.GroupID == "" {
		return nil, errors.New("config.kafka.ConnectConsumer: group id is required")
	}

	c, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:      cfg.Brokers,
		GroupID:      cfg.GroupID,
		OffsetOldest: true,
	})
	if err != nil {
		return nil, fmt.Errorf("config.kafka.ConnectConsumer: %w", err)
	}
	consumer = c
	return consumer, nil
}

func DisconnectConsumer() error {
	consumerMu.Lock()
	defer consumerMu.Unlock()

	if consumer == nil {
		return nil
	}
	err := consumer.Close()
	consumer = nil
	return err
}

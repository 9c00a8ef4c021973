package kafka

import (
	"errors"
	"fmt"
	"sync"

	"intelligence-srv/config"
	"intelligence-srv/pkg/kafka"
)

var (
	producer   kafka.IProducer
	producerMu sync.RWMutex
)

// ConnectProducer returns the process-wide producer for cfg.Topic.
func ConnectProducer(cfg config.KafkaConfig) (kafka.IProducer, error) {
	producerMu.Lock()
	defer producerMu.Unlock()

	if producer != nil {
		return producer, nil
	}

	p, err := kafka.NewProducer(kafka.Config{Brokers: cfg.Brokers, Topic: cfg.Topic})
	if err != nil {
		return nil, fmt.Errorf("config.kafka.ConnectProducer: %w", err)
	}
	producer = p
	return producer, nil
}

func ProducerHealthCheck() error {
	producerMu.RLock()
	defer producerMu.RUnlock()

	if producer == nil {
		return errors.New("kafka producer not initialized")
	}
	return producer.HealthCheck()
}

func DisconnectProducer() error {
	producerMu.Lock()
	defer producerMu.Unlock()

	if producer == nil {
		return nil
	}
	err := producer.Close()
	producer = nil
	return err
}

package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// IProducer publishes messages to a single topic.
// Implementations are safe for concurrent use.
type IProducer interface {
	Publish(key, value []byte) error
	PublishWithHeaders(key, value []byte, headers map[string]string) error
	Close() error
	HealthCheck() error
}

// IConsumer wraps a sarama consumer group.
type IConsumer interface {
	// ConsumeWithContext joins the group and blocks until ctx is cancelled,
	// re-joining after every rebalance.
	ConsumeWithContext(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Close() error
	Errors() <-chan error
}

// NewProducer creates a sync producer for cfg.Topic.
func NewProducer(cfg Config) (IProducer, error) {
	if err := validateProducerConfig(cfg); err != nil {
		return nil, err
	}
	return newProducerImpl(cfg)
}

// NewConsumer creates a consumer group member.
func NewConsumer(cfg ConsumerConfig) (IConsumer, error) {
	if err := validateConsumerConfig(cfg); err != nil {
		return nil, err
	}
	return newConsumerImpl(cfg)
}

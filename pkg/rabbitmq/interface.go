package rabbitmq

import (
	"context"

	"intelligence-srv/pkg/log"
)

// IRabbitMQ is a self-healing AMQP connection.
// Implementations are safe for concurrent use.
type IRabbitMQ interface {
	Close()
	IsReady() bool
	Channel() (IChannel, error)
}

// IChannel is an AMQP channel that is re-opened after a reconnect.
type IChannel interface {
	ExchangeDeclare(exc ExchangeArgs) error
	Publish(ctx context.Context, publish PublishArgs) error
	Close() error
}

// NewRabbitMQ dials cfg.URL, retrying until RetryConnectionTimeout.
func NewRabbitMQ(cfg Config, l log.Logger) (IRabbitMQ, error) {
	if cfg.URL == "" {
		return nil, ErrURLRequired
	}
	conn := &connectionImpl{
		url:                 cfg.URL,
		retryWithoutTimeout: cfg.RetryWithoutTimeout,
		l:                   l,
	}
	if err := conn.connect(); err != nil {
		return nil, err
	}
	return conn, nil
}

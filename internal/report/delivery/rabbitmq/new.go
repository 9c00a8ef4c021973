package rabbitmq

import (
	"errors"
	"fmt"
	"sync"

	"intelligence-srv/internal/report"
	"intelligence-srv/pkg/log"
	pkgRabbit "intelligence-srv/pkg/rabbitmq"
)

type implPublisher struct {
	l        log.Logger
	conn     pkgRabbit.IRabbitMQ
	exchange string

	mu sync.Mutex
	ch pkgRabbit.IChannel
}

// New declares exchange as a durable topic exchange and returns a publisher on it.
func New(l log.Logger, conn pkgRabbit.IRabbitMQ, exchange string) (report.AlertPublisher, error) {
	if conn == nil {
		return nil, errors.New("rabbitmq connection is required")
	}
	if exchange == "" {
		return nil, errors.New("alert exchange is required")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(pkgRabbit.ExchangeArgs{
		Name:    exchange,
		Type:    pkgRabbit.ExchangeTypeTopic,
		Durable: true,
	}); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &implPublisher{
		l:        l,
		conn:     conn,
		exchange: exchange,
		ch:       ch,
	}, nil
}

package consumer

import (
	"errors"

	"intelligence-srv/internal/report"
	pkgKafka "intelligence-srv/pkg/kafka"
	"intelligence-srv/pkg/log"
)

// Config holds the dependencies of the batch consumer.
type Config struct {
	Logger  log.Logger
	UseCase report.UseCase
	Group   pkgKafka.IConsumer
	Topic   string
}

// Consumer runs a report for every completed comment batch.
type Consumer struct {
	l     log.Logger
	uc    report.UseCase
	group pkgKafka.IConsumer
	topic string
}

func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, errors.New("usecase is required")
	}
	if cfg.Group == nil {
		return nil, errors.New("consumer group is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("topic is required")
	}

	return &Consumer{
		l:     cfg.Logger,
		uc:    cfg.UseCase,
		group: cfg.Group,
		topic: cfg.Topic,
	}, nil
}

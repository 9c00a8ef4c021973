package producer

import (
	"intelligence-srv/internal/report"
	pkgKafka "intelligence-srv/pkg/kafka"
	"intelligence-srv/pkg/log"
)

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

// New creates a report result producer on the topic the IProducer was built for.
func New(l log.Logger, producer pkgKafka.IProducer) report.Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}

package consumer

import (
	"context"
	"fmt"

	"intelligence-srv/internal/intelligence"
	reportConsumer "intelligence-srv/internal/report/delivery/kafka/consumer"
	reportProducer "intelligence-srv/internal/report/delivery/kafka/producer"
	reportPostgre "intelligence-srv/internal/report/repository/postgre"
	reportRedis "intelligence-srv/internal/report/repository/redis"
	reportUsecase "intelligence-srv/internal/report/usecase"
	"intelligence-srv/internal/scheduler"
)

type domainConsumers struct {
	batchConsumer *reportConsumer.Consumer
	scheduler     *scheduler.Scheduler
}

// setupDomains initializes all domain layers (repositories, usecases, consumers)
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	repo := reportPostgre.New(srv.postgresDB, srv.l)
	cache := reportRedis.New(srv.redisClient, srv.l)
	producer := reportProducer.New(srv.l, srv.kafkaProducer)

	uc := reportUsecase.New(
		srv.l,
		repo,
		cache,
		srv.minioClient,
		srv.engine,
		producer,
		srv.alerts,
		srv.metrics,
		srv.reportConfig,
	)

	batchCons, err := reportConsumer.New(reportConsumer.Config{
		Logger:  srv.l,
		UseCase: uc,
		Group:   srv.batchGroup,
		Topic:   srv.kafkaConfig.BatchTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create batch consumer: %w", err)
	}

	consumers := &domainConsumers{batchConsumer: batchCons}

	if srv.schedulerConfig.Enabled {
		sch, err := scheduler.New(srv.l, uc, scheduler.Config{
			Spec:         srv.schedulerConfig.Cron,
			SourcePrefix: srv.schedulerConfig.SourcePrefix,
			Subject: intelligence.Subject{
				Movie:    srv.schedulerConfig.Movie,
				Hero:     srv.schedulerConfig.Hero,
				Director: srv.schedulerConfig.Director,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create scheduler: %w", err)
		}
		consumers.scheduler = sch
	}

	srv.l.Infof(ctx, "Report domain initialized")
	return consumers, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	consumers.batchConsumer.Consume(ctx)

	if consumers.scheduler != nil {
		if err := consumers.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers waits for a scheduled run in progress, then leaves the group.
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.scheduler != nil {
		<-consumers.scheduler.Stop().Done()
	}
	if err := srv.batchGroup.Close(); err != nil {
		srv.l.Errorf(ctx, "Error closing batch consumer group: %v", err)
	}

	srv.l.Infof(ctx, "All consumers stopped")
}

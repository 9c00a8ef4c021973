package consumer

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Run starts the consumer server and blocks until ctx is cancelled.
func (srv *ConsumerServer) Run(ctx context.Context) error {
	consumers, err := srv.setupDomains(ctx)
	if err != nil {
		srv.l.Errorf(ctx, "Failed to setup domains: %v", err)
		return err
	}

	if err := srv.startConsumers(ctx, consumers); err != nil {
		srv.l.Errorf(ctx, "Failed to start consumers: %v", err)
		return err
	}

	metricsServer := srv.startMetrics(ctx)

	srv.l.Info(ctx, "Consumer Server is running")

	<-ctx.Done()
	srv.l.Info(context.Background(), "Shutdown signal received, stopping consumers...")

	srv.stopConsumers(context.Background(), consumers)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			srv.l.Errorf(context.Background(), "Metrics server shutdown error: %v", err)
		}
	}

	srv.l.Info(context.Background(), "Consumer Server stopped gracefully")
	return nil
}

// startMetrics exposes /metrics on metricsAddr. Nothing is served when it is empty.
func (srv *ConsumerServer) startMetrics(ctx context.Context) *http.Server {
	if srv.metricsAddr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", srv.metrics.Handler())
	server := &http.Server{
		Addr:              srv.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		srv.l.Infof(ctx, "Metrics listening on %s", srv.metricsAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.l.Errorf(ctx, "Metrics server error: %v", err)
		}
	}()
	return server
}

package httpserver

import (
	"context"

	"intelligence-srv/internal/middleware"
	reportHTTP "intelligence-srv/internal/report/delivery/http"
	reportPostgre "intelligence-srv/internal/report/repository/postgre"
	reportRedis "intelligence-srv/internal/report/repository/redis"
	reportUsecase "intelligence-srv/internal/report/usecase"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	repo := reportPostgre.New(srv.postgresDB, srv.l)
	cache := reportRedis.New(srv.redisClient, srv.l)

	uc := reportUsecase.New(
		srv.l,
		repo,
		cache,
		srv.minioClient,
		srv.engine,
		srv.resultProducer,
		srv.alertPublisher,
		srv.metrics,
		srv.reportConfig,
	)

	handler := reportHTTP.New(srv.l, uc)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Report domain registered")
	return nil
}

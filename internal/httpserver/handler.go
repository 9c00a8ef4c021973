package httpserver

import (
	"context"

	"intelligence-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (srv *HTTPServer) mapHandlers(ctx context.Context) error {
	mw := middleware.New(srv.l, srv.verifier, srv.cookieConfig, srv.rateLimit)

	srv.gin.Use(middleware.Recovery(srv.l))
	srv.registerSystemRoutes()

	if err := srv.setupReportDomain(ctx, srv.gin.Group(""), mw); err != nil {
		return err
	}
	return nil
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))
}

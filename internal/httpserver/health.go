package httpserver

import (
	"context"
	"net/http"

	"intelligence-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	HealthMessage = "From Smap API V1 With Love"
	HealthVersion = "1.0.0"
	ServiceName   = "intelligence-srv"
)

type dependencyCheck struct {
	name  string
	check func(ctx context.Context) error
}

func (srv *HTTPServer) readinessChecks() []dependencyCheck {
	return []dependencyCheck{
		{name: "database", check: srv.postgresDB.PingContext},
		{name: "redis", check: srv.redisClient.Ping},
		{name: "minio", check: srv.minioClient.HealthCheck},
	}
}

func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck answers 503 naming the first dependency that is down.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	body, ok := runChecks(c.Request.Context(), srv.readinessChecks())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	response.OK(c, body)
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

func runChecks(ctx context.Context, checks []dependencyCheck) (gin.H, bool) {
	body := gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	}
	for _, dc := range checks {
		if err := dc.check(ctx); err != nil {
			return gin.H{
				"status":  "not ready",
				"message": dc.name + " connection failed",
				"error":   err.Error(),
			}, false
		}
		body[dc.name] = "connected"
	}
	return body, true
}

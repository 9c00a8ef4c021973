package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"intelligence-srv/pkg/log"
	"intelligence-srv/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRunChecks(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("refused") }

	body, ok := runChecks(context.Background(), []dependencyCheck{{"database", up}, {"redis", up}})
	assert.True(t, ok)
	assert.Equal(t, "connected", body["redis"])

	body, ok = runChecks(context.Background(), []dependencyCheck{{"database", up}, {"redis", down}, {"minio", up}})
	assert.False(t, ok)
	assert.Equal(t, "redis connection failed", body["message"])
	assert.Equal(t, "refused", body["error"])
}

func TestSystemRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &HTTPServer{gin: gin.New(), l: log.NewNop(), metrics: metrics.New()}
	srv.registerSystemRoutes()

	for _, path := range []string{"/health", "/live", "/metrics"} {
		w := httptest.NewRecorder()
		srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "intelligence_comments_ingested_total")
}

func TestNew_requiresDependencies(t *testing.T) {
	_, err := New(Config{Logger: log.NewNop(), Mode: gin.TestMode, Port: 8080})
	assert.EqualError(t, err, "postgresDB is required")
}

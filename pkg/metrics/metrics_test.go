package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderHandler(t *testing.T) {
	r := New()
	r.ObserveRun(StatusCompleted, 120*time.Millisecond)
	r.AddIngested(17)
	r.AddSkipped("parse_failure", 2)
	r.AddSkipped("malformed", 0)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `intelligence_report_runs_total{status="completed"} 1`)
	assert.Contains(t, out, "intelligence_comments_ingested_total 17")
	assert.Contains(t, out, `intelligence_comments_skipped_total{reason="parse_failure"} 2`)
	assert.NotContains(t, out, `reason="malformed"`)
	assert.Contains(t, out, "intelligence_report_duration_seconds_count 1")
}

func TestNop(t *testing.T) {
	r := Nop()
	r.ObserveRun(StatusFailed, time.Second)
	r.AddIngested(3)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
}

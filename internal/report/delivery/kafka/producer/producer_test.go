package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"intelligence-srv/internal/report"
	kafkaDelivery "intelligence-srv/internal/report/delivery/kafka"
	"intelligence-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	key, value []byte
	headers    map[string]string
	err        error
}

func (r *recordingProducer) Publish(key, value []byte) error {
	return r.PublishWithHeaders(key, value, nil)
}

func (r *recordingProducer) PublishWithHeaders(key, value []byte, headers map[string]string) error {
	r.key, r.value, r.headers = key, value, headers
	return r.err
}

func (r *recordingProducer) Close() error       { return nil }
func (r *recordingProducer) HealthCheck() error { return nil }

func TestPublishResult(t *testing.T) {
	rec := &recordingProducer{}
	p := New(log.NewNop(), rec)

	at := time.Date(2024, 5, 2, 5, 30, 0, 0, time.FixedZone("IST", 19800))
	err := p.PublishResult(context.Background(), report.ResultEvent{
		ReportID:      "r-1",
		BatchID:       "b-1",
		Status:        report.StatusCompleted,
		FileURL:       "s3://reports/reports/r-1.json",
		TotalMentions: 10,
		AttackerCount: 2,
		FinishedAt:    at,
	})
	require.NoError(t, err)

	assert.Equal(t, "r-1", string(rec.key))
	assert.Equal(t, kafkaDelivery.EventReportCompleted, rec.headers["event_type"])

	var msg kafkaDelivery.ReportResultMessage
	require.NoError(t, json.Unmarshal(rec.value, &msg))
	assert.Equal(t, "b-1", msg.BatchID)
	assert.Equal(t, 10, msg.TotalMentions)
	assert.Equal(t, time.UTC, msg.FinishedAt.Location())
}

func TestPublishResult_failedEventAndError(t *testing.T) {
	rec := &recordingProducer{err: errors.New("broker down")}
	p := New(log.NewNop(), rec)

	err := p.PublishResult(context.Background(), report.ResultEvent{ReportID: "r-2", Status: report.StatusFailed})
	require.Error(t, err)
	assert.Equal(t, kafkaDelivery.EventReportFailed, rec.headers["event_type"])
}

package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"intelligence-srv/internal/report"
	kafkaDelivery "intelligence-srv/internal/report/delivery/kafka"
)

// PublishResult sends evt keyed by report ID so events of one run stay ordered.
func (p *implProducer) PublishResult(ctx context.Context, evt report.ResultEvent) error {
	msg := kafkaDelivery.ReportResultMessage{
		ReportID:         evt.ReportID,
		BatchID:          evt.BatchID,
		Status:           evt.Status,
		FileURL:          evt.FileURL,
		TotalMentions:    evt.TotalMentions,
		NegativeMentions: evt.NegativeMentions,
		SpikeDetected:    evt.SpikeDetected,
		AttackerCount:    evt.AttackerCount,
		ErrorMessage:     evt.ErrorMessage,
		FinishedAt:       evt.FinishedAt.UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal report result: %w", err)
	}

	eventType := kafkaDelivery.EventReportCompleted
	if evt.Status == report.StatusFailed {
		eventType = kafkaDelivery.EventReportFailed
	}

	if err := p.producer.PublishWithHeaders([]byte(evt.ReportID), body, map[string]string{
		"event_type": eventType,
	}); err != nil {
		return fmt.Errorf("failed to publish report result: %w", err)
	}

	p.l.Infof(ctx, "report.delivery.kafka.producer.PublishResult: Published %s for report %s", eventType, evt.ReportID)
	return nil
}

package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	kafkaDelivery "intelligence-srv/internal/report/delivery/kafka"
	"intelligence-srv/pkg/scope"
)

// handleBatchCompleted returns nil for messages that can never succeed, so
// they are marked and not retried.
func (c *Consumer) handleBatchCompleted(ctx context.Context, value []byte) error {
	var message kafkaDelivery.BatchCompletedMessage
	if err := json.Unmarshal(value, &message); err != nil {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleBatchCompleted: Invalid message format (skipping): %v", err)
		return nil
	}

	input := toProcessInput(message)
	if message.BatchID == "" || len(input.SourceURLs) == 0 {
		c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleBatchCompleted: missing batch_id or file urls (skipping)")
		return nil
	}

	ctx = scope.SetScopeToContext(ctx, model.SystemScope)
	output, err := c.uc.Process(ctx, model.SystemScope, input)
	if err != nil {
		if isPermanent(err) {
			c.l.Warnf(ctx, "report.delivery.kafka.consumer.handleBatchCompleted: batch %s rejected (skipping): %v", message.BatchID, err)
			return nil
		}
		return fmt.Errorf("usecase Process: %w", err)
	}

	c.l.Infof(ctx, "report.delivery.kafka.consumer.handleBatchCompleted: batch %s -> report %s: mentions=%d negative=%d skipped=%d spike=%t attackers=%d",
		message.BatchID, output.ReportID, output.TotalMentions, output.NegativeMentions, output.Skipped, output.SpikeDetected, output.AttackerCount)
	return nil
}

func isPermanent(err error) bool {
	return errors.Is(err, report.ErrSourceRequired) ||
		errors.Is(err, report.ErrInvalidSourceURL) ||
		errors.Is(err, report.ErrTooManySources) ||
		errors.Is(err, report.ErrSourceNotFound)
}

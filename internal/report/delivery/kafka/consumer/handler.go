package consumer

import (
	"github.com/IBM/sarama"
)

type batchCompletedHandler struct {
	consumer *Consumer
}

func (h *batchCompletedHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *batchCompletedHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks a message only once it was handled; a failed message is
// redelivered after the next rebalance.
func (h *batchCompletedHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		ctx := session.Context()
		h.consumer.l.Infof(ctx, "report.delivery.kafka.consumer.ConsumeClaim: partition %d offset %d", msg.Partition, msg.Offset)

		if err := h.consumer.handleBatchCompleted(ctx, msg.Value); err != nil {
			h.consumer.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumeClaim: Failed to process batch completed message: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

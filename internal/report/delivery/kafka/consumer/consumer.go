package consumer

import (
	"context"
)

// Consume joins the group in the background until ctx is done.
func (c *Consumer) Consume(ctx context.Context) {
	handler := &batchCompletedHandler{consumer: c}

	go func() {
		for {
			if err := c.group.ConsumeWithContext(ctx, []string{c.topic}, handler); err != nil {
				c.l.Errorf(ctx, "report.delivery.kafka.consumer.Consume: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			c.l.Errorf(ctx, "report.delivery.kafka.consumer.Consume: group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", c.topic)
}

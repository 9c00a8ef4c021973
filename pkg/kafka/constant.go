package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const (
	// ProducerTimeout is the Kafka producer request timeout.
	ProducerTimeout = 10 * time.Second
	// ProducerRetryMax is the max producer retries.
	ProducerRetryMax = 3
	// rejoinBackoff is the pause before re-joining after a consume error.
	rejoinBackoff = 2 * time.Second
)

// KafkaVersion is the sarama protocol version used.
var KafkaVersion = sarama.V2_6_0_0

package rabbitmq

import "time"

const (
	RoutingKeySpike        = "alert.spike"
	RoutingKeyCoordination = "alert.coordination"
)

type spikeMessage struct {
	Hour      string  `json:"hour"`
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
	Threshold float64 `json:"threshold"`
	Severity  string  `json:"severity"`
}

type attackerMessage struct {
	Author           string   `json:"author"`
	NegativeComments int      `json:"negative_comments"`
	StagesTargeted   []string `json:"stages_targeted"`
	VideosTargeted   int      `json:"videos_targeted"`
}

// alertMessage is the body published to the alert exchange.
type alertMessage struct {
	Kind        string            `json:"kind"`
	ReportID    string            `json:"report_id"`
	Movie       string            `json:"movie,omitempty"`
	Hero        string            `json:"hero,omitempty"`
	Director    string            `json:"director,omitempty"`
	Spike       *spikeMessage     `json:"spike,omitempty"`
	Attackers   []attackerMessage `json:"attackers,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

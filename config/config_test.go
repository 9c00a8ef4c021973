package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWT:          JWTConfig{SecretKey: strings.Repeat("k", 32)},
		Postgres:     PostgresConfig{Host: "localhost"},
		MinIO:        MinIOConfig{Bucket: "smap-intelligence"},
		Kafka:        KafkaConfig{Brokers: []string{"localhost:9092"}},
		Intelligence: IntelligenceConfig{NegativeVideoThreshold: 60, LoadConcurrency: 4},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"short secret", func(c *Config) { c.JWT.SecretKey = "short" }, "jwt.secret_key"},
		{"no brokers", func(c *Config) { c.Kafka.Brokers = nil }, "kafka.brokers"},
		{"threshold above 100", func(c *Config) { c.Intelligence.NegativeVideoThreshold = 101 }, "negative_video_threshold"},
		{"negative top offenders", func(c *Config) { c.Intelligence.TopOffenders = -1 }, "top_offenders"},
		{"scheduler without prefix", func(c *Config) { c.Scheduler.Enabled = true }, "scheduler.source_prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

package consumer

import (
	"strings"

	"intelligence-srv/internal/intelligence"
	"intelligence-srv/internal/model"
	"intelligence-srv/internal/report"
	kafkaDelivery "intelligence-srv/internal/report/delivery/kafka"
)

func toProcessInput(m kafkaDelivery.BatchCompletedMessage) report.ProcessInput {
	urls := m.FileURLs
	if len(urls) == 0 && strings.TrimSpace(m.FileURL) != "" {
		urls = []string{m.FileURL}
	}
	return report.ProcessInput{
		BatchID:    m.BatchID,
		Source:     model.SourceKafka,
		Title:      m.Title,
		SourceURLs: urls,
		Subject: intelligence.Subject{
			Movie:    m.Movie,
			Hero:     m.Hero,
			Director: m.Director,
		},
	}
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"intelligence-srv/internal/report"
	pkgRabbit "intelligence-srv/pkg/rabbitmq"
)

func (p *implPublisher) PublishAlert(ctx context.Context, alert report.Alert) error {
	key, err := routingKey(alert.Kind)
	if err != nil {
		return err
	}

	body, err := json.Marshal(toAlertMessage(alert))
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	// the channel is shared by every run that finishes concurrently
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Publish(ctx, pkgRabbit.PublishArgs{
		Exchange:   p.exchange,
		RoutingKey: key,
		Msg: pkgRabbit.Publishing{
			ContentType:  pkgRabbit.ContentTypeJSON,
			DeliveryMode: pkgRabbit.DeliveryModePersistent,
			MessageId:    alert.ReportID + ":" + alert.Kind,
			Timestamp:    alert.GeneratedAt,
			Body:         body,
		},
	}); err != nil {
		return fmt.Errorf("failed to publish %s alert: %w", alert.Kind, err)
	}

	p.l.Infof(ctx, "report.delivery.rabbitmq.PublishAlert: Published %s for report %s", key, alert.ReportID)
	return nil
}

func routingKey(kind string) (string, error) {
	switch kind {
	case report.AlertKindSpike:
		return RoutingKeySpike, nil
	case report.AlertKindCoordination:
		return RoutingKeyCoordination, nil
	}
	return "", fmt.Errorf("unknown alert kind %q", kind)
}

func toAlertMessage(a report.Alert) alertMessage {
	msg := alertMessage{
		Kind:        a.Kind,
		ReportID:    a.ReportID,
		Movie:       a.Subject.Movie,
		Hero:        a.Subject.Hero,
		Director:    a.Subject.Director,
		GeneratedAt: a.GeneratedAt.UTC(),
	}
	if a.Spike != nil {
		msg.Spike = &spikeMessage{
			Hour:      a.Spike.Hour,
			Count:     a.Spike.Count,
			Average:   a.Spike.Average,
			Threshold: a.Spike.Threshold,
			Severity:  a.Spike.Severity,
		}
	}
	for _, at := range a.Attackers {
		stages := make([]string, len(at.StagesTargeted))
		for i, s := range at.StagesTargeted {
			stages[i] = string(s)
		}
		msg.Attackers = append(msg.Attackers, attackerMessage{
			Author:           at.Author,
			NegativeComments: at.NegativeComments,
			StagesTargeted:   stages,
			VideosTargeted:   at.VideosTargeted,
		})
	}
	return msg
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/creditdesk/credit-engine/internal/domain/event"
)

// EventPublisher implements port.EventPublisher by writing domain events to
// one Kafka topic, keyed by aggregate ID.
type EventPublisher struct {
	producer *Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting the given producer and topic.
func NewEventPublisher(producer *Producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serializes and sends domain events.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
		)

		messages = append(messages, Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}

// NopPublisher discards events; it stands in when no broker is configured.
type NopPublisher struct{}

// Publish drops the events.
func (NopPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }

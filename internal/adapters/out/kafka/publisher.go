// Package kafka relays outbox messages to a Kafka topic.
package kafka

import (
	"context"
	"strings"

	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	headerEventType = "event_type"
	headerMessageID = "message_id"
)

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter hashes on the message key, so all events of one order land on
// one partition in the order they were stored.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventPublisher implements ports.EventPublisher.
type EventPublisher struct {
	writer messageWriter
}

func NewEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes the batch in one call. A failure is reported as Unavailable
// and the relay retries the whole batch later.
func (p *EventPublisher) Publish(ctx context.Context, messages ...outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: headerEventType, Value: []byte(m.Type)},
				{Key: headerMessageID, Value: []byte(m.ID.String())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return errs.NewUnavailableErrorWithCause("kafka", err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

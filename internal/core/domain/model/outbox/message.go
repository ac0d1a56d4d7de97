// Package outbox models domain events waiting to be relayed to the message broker.
package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// Message is one serialized event stored alongside the state change that produced it.
type Message struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Type        string
	Payload     []byte
	OccurredAt  time.Time
	SentAt      *time.Time
}

// OrderEventPayload is the wire body of order events.
type OrderEventPayload struct {
	OrderID   string `json:"orderId"`
	AccountID string `json:"accountId"`
	Status    string `json:"status"`
	Total     string `json:"total"`
	LineCount int    `json:"lineCount"`
}

// NewOrderMessage serializes an order event into a pending message.
func NewOrderMessage(e order.Event, occurredAt time.Time) (Message, error) {
	if e.Type == "" {
		return Message{}, errs.NewValueIsRequiredError("event type")
	}
	if err := errors.Join(e.OrderID.Validate(), e.OwnerID.Validate()); err != nil {
		return Message{}, err
	}

	payload, err := json.Marshal(OrderEventPayload{
		OrderID:   e.OrderID.String(),
		AccountID: e.OwnerID.String(),
		Status:    e.Status.String(),
		Total:     e.Total.String(),
		LineCount: e.LineCount,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		ID:          kernel.NewUUID(),
		AggregateID: e.OrderID,
		Type:        string(e.Type),
		Payload:     payload,
		OccurredAt:  occurredAt,
	}, nil
}

// IsSent reports whether the message was already relayed.
func (m Message) IsSent() bool {
	return m.SentAt != nil
}

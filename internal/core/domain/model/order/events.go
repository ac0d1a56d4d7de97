package order

import "storefront/internal/core/domain/model/kernel"

// EventType names a fact recorded by the aggregate.
type EventType string

const (
	EventCreated   EventType = "order.created"
	EventEdited    EventType = "order.edited"
	EventPaid      EventType = "order.paid"
	EventCancelled EventType = "order.cancelled"
)

// Event is a snapshot of the order taken right after a mutation.
type Event struct {
	Type      EventType
	OrderID   kernel.UUID
	OwnerID   kernel.UUID
	Status    Status
	Total     kernel.Money
	LineCount int
}

func (o *Order) record(t EventType) {
	o.events = append(o.events, Event{
		Type:      t,
		OrderID:   o.id,
		OwnerID:   o.owner,
		Status:    o.status,
		Total:     o.total,
		LineCount: len(o.lines),
	})
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

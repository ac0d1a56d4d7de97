// Package outboxrepo stores order events in the outbox_messages table in the
// same transaction as the order change that produced them.
package outboxrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Type        string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"index;not null"`
	SentAt      *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID.Bytes(),
		AggregateID: m.AggregateID.Bytes(),
		Type:        m.Type,
		Payload:     m.Payload,
		OccurredAt:  m.OccurredAt,
		SentAt:      m.SentAt,
	}
}

func toDomain(dto MessageDTO) (outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return outbox.Message{}, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return outbox.Message{}, err
	}

	return outbox.Message{
		ID:          id,
		AggregateID: aggregateID,
		Type:        dto.Type,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
		SentAt:      dto.SentAt,
	}, nil
}

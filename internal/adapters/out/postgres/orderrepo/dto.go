// Package orderrepo persists order aggregates in two tables: orders and
// order_lines. Lines are owned by their order and removed with it.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Total     decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt time.Time       `gorm:"index;not null"`
	Status    int             `gorm:"not null"`
	Lines     []OrderLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one order_lines row. Position keeps entry order stable.
type OrderLineDTO struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID int64           `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	return OrderDTO{
		ID:        id,
		AccountID: o.Owner().Bytes(),
		Total:     o.Total().Amount(),
		CreatedAt: o.CreatedAt(),
		Status:    int(o.Status()),
		Lines:     linesFromDomain(id, o.Lines()),
	}
}

func linesFromDomain(orderID uuid.UUID, lines []order.Line) []OrderLineDTO {
	out := make([]OrderLineDTO, 0, len(lines))
	for i, l := range lines {
		out = append(out, OrderLineDTO{
			OrderID:   orderID,
			Position:  i,
			ProductID: int64(l.ProductID()),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice().Amount(),
		})
	}
	return out
}

// toDomain rebuilds the aggregate with RestoreOrder; dto.Lines must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	owner, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		price, priceErr := kernel.NewMoney(l.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		line, lineErr := order.NewLine(catalog.ProductID(l.ProductID), l.Quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, owner, lines, total, dto.CreatedAt, order.Status(dto.Status))
}

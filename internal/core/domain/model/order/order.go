package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of a purchase.
//
// Invariants:
//   - id, owner and createdAt never change after construction
//   - total equals the sum of Line.Total over lines, recomputed whenever lines change
//   - lines change only while status is Pending
//   - status moves only through the transitions defined on Status
type Order struct {
	id        kernel.UUID
	owner     kernel.UUID
	lines     []Line
	total     kernel.Money
	createdAt time.Time
	status    Status

	events        []Event
	isConstructed bool
}

// NewOrder creates a Pending order owned by owner with the given priced lines.
//
// Example:
//
//	line, _ := order.NewLine(42, 2, kernel.MustMoney("10"))
//	o, err := order.NewOrder(repo.NextIdentity(), principal, []order.Line{line}, time.Now())
//	if err != nil {
//	    // validation error
//	}
//	o.Total() // 20.00
func NewOrder(id, owner kernel.UUID, lines []Line, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setCreatedAt(createdAt),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.record(EventCreated)
	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total must match the
// lines, otherwise the row is reported as invalid rather than silently repaired.
func RestoreOrder(
	id, owner kernel.UUID,
	lines []Line,
	total kernel.Money,
	createdAt time.Time,
	status Status,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setCreatedAt(createdAt),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if !o.total.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("stored total %s does not match lines total %s", total, o.total),
		)
	}

	o.status = status
	return o, nil
}

// Validate reports whether o was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Owner() kernel.UUID {
	return o.owner
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// Lines returns a copy of the current lines in entry order.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// IsOwnedBy compares the owner by identifier, never by object identity.
func (o *Order) IsOwnedBy(accountID kernel.UUID) bool {
	return o.owner.IsEqual(accountID)
}

// ReplaceLines discards every current line and installs lines, recomputing the total.
// Fails with a status conflict unless the order is Pending; on failure nothing changes.
func (o *Order) ReplaceLines(lines []Line) error {
	if err := o.status.ValidateEdit(); err != nil {
		return err
	}
	if err := o.setLines(lines); err != nil {
		return err
	}

	o.record(EventEdited)
	return nil
}

// Pay completes a Pending order on behalf of principal.
// A non-Pending order yields a status conflict; a principal other than the
// owner yields errs.NotOwnerError.
func (o *Order) Pay(principal kernel.UUID) error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}
	if !o.IsOwnedBy(principal) {
		return errs.NewNotOwnerError("order", o.id.String(), principal.String())
	}

	o.status = newStatus
	o.record(EventPaid)
	return nil
}

// Cancel moves the order to Cancelled from any status, Completed included.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.record(EventCancelled)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(owner kernel.UUID) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	o.owner = owner
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

// setLines installs lines and the total computed from them in one pass.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	total := kernel.ZeroMoney()
	installed := make([]Line, 0, len(lines))
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		total = total.Add(l.Total())
		installed = append(installed, l)
	}

	o.lines = installed
	o.total = total
	return nil
}

package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value (nil) UUID.
// It is a ValueIsRequired error, so a missing owner or order id surfaces to
// callers as a validation failure rather than as a lookup miss.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID wraps github.com/google/uuid so identifiers compare by value and the
// nil UUID can never pass as a real identity.
//
// Orders, accounts and outbox messages are all identified by UUID. Ownership
// checks go through IsEqual, never through pointer or struct identity of the
// objects that carry the id.
//
// The zero value is invalid. Build one with NewUUID, UUIDFromString or
// UUIDFromBytes; Validate reports a zero value. UUID is immutable and safe for
// concurrent use.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	owner, err := kernel.UUIDFromString(claims.Subject)
//	if err != nil {
//	    return err
//	}
//	if !order.Owner().IsEqual(owner) { ... }
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID. Repositories hand these out
// through NextIdentity; the outbox uses them as message ids.
//
// Example:
//
//	id := kernel.NewUUID()
//	o, err := order.NewOrder(id, owner, lines, time.Now())
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less forms.
// The nil UUID is rejected with ErrUUIDIsNotConstructed, so
// "00000000-0000-0000-0000-000000000000" in a token subject or a path
// parameter never becomes an identity.
//
// Example:
//
//	id, err := kernel.UUIDFromString(ctx.Param("id"))
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("orderId", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from exactly 16 bytes, as stored by the postgres adapters.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for persistence mappings.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares identifiers by value.
//
// Example:
//
//	if !o.Owner().IsEqual(principal) {
//	    return errs.NewNotOwnerError("order", o.ID().String(), principal.String())
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

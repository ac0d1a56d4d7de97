package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──Pay──> Completed
//	   │                 │
//	   └──Cancel──> Cancelled <──Cancel── (any status)
//
// Processing is a valid stored value (seed and bulk-load paths write it) but
// no operation moves an order into it. It behaves like every other
// non-Pending status: not editable, not payable, cancellable.
type Status int

const (
	// Unknown is the invalid zero value.
	Unknown Status = iota
	Pending
	Processing
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus maps a case-insensitive name to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateEdit reports whether lines may be replaced in this status.
func (s Status) ValidateEdit() error {
	if s != Pending {
		return errs.NewStatusConflictError("order", s.String(), "editable")
	}
	return nil
}

// Pay transitions Pending to Completed.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewStatusConflictError("order", s.String(), "payable")
	}
	return Completed, nil
}

// Cancel transitions any valid status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}

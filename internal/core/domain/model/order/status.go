package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──> out_for_delivery ──> delivered
//	   │            │             │
//	   └────────────┴─────────────┴──────> cancelled
//
// delivered and cancelled are terminal. Status is persisted and sent on the
// wire as its string value.
type Status string

const (
	// Pending is the status of every order right after checkout.
	Pending Status = "pending"

	// Confirmed means the restaurant accepted the order.
	Confirmed Status = "confirmed"

	// Preparing means the kitchen is working on the order.
	Preparing Status = "preparing"

	// OutForDelivery means a delivery agent has picked the order up.
	// Only in this status is the live delivery location exposed.
	OutForDelivery Status = "out_for_delivery"

	// Delivered is terminal: the customer received the order.
	Delivered Status = "delivered"

	// Cancelled is terminal: the order was abandoned before pickup.
	Cancelled Status = "cancelled"
)

// transitions is the complete table of legal status changes.
// A status missing from the keys is not a valid status at all.
var transitions = map[Status][]Status{
	Pending:        {Confirmed, Cancelled},
	Confirmed:      {Preparing, Cancelled},
	Preparing:      {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered},
	Delivered:      {},
	Cancelled:      {},
}

// ParseStatus converts a wire or database value into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that s is one of the six known statuses.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowedNext returns the statuses reachable from s in one step.
// The result is a fresh slice; callers may modify it.
func (s Status) AllowedNext() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition is the status transition guard: a pure function of the
// current and requested status. Unknown statuses on either side are rejected.
func CanTransition(current, requested Status) bool {
	for _, next := range transitions[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// Transition returns requested when the move from s is legal, otherwise an
// *errs.IllegalTransitionError listing what s may move to. An unknown
// requested status is a validation error, not an illegal transition.
//
// Example:
//
//	next, err := order.Pending.Transition(order.OutForDelivery)
//	// err: illegal status transition: pending -> out_for_delivery, allowed next: confirmed, cancelled
func (s Status) Transition(requested Status) (Status, error) {
	if err := requested.Validate(); err != nil {
		return "", err
	}
	if !CanTransition(s, requested) {
		return "", NewIllegalTransitionError(s, requested)
	}
	return requested, nil
}

// NewIllegalTransitionError builds the rejection for from -> to, carrying the
// statuses that from may legally move to.
func NewIllegalTransitionError(from, to Status) *errs.IllegalTransitionError {
	next := from.AllowedNext()
	allowed := make([]string, 0, len(next))
	for _, s := range next {
		allowed = append(allowed, s.String())
	}
	return errs.NewIllegalTransitionError(from.String(), to.String(), allowed)
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, OutForDelivery, Delivered, Cancelled}
}

// TerminalStatuses lists the statuses no order leaves.
func TerminalStatuses() []Status {
	return []Status{Delivered, Cancelled}
}

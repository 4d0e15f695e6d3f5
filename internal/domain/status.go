package domain

import "fmt"

// validTransitions is the invoice lifecycle table. PAID is terminal;
// CANCELLED is recoverable back to DRAFT.
var validTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:     {StatusSent, StatusCancelled},
	StatusSent:      {StatusPaid, StatusOverdue, StatusCancelled},
	StatusOverdue:   {StatusPaid, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {StatusDraft},
}

// InvalidTransitionError reports a rejected status change, naming both
// endpoints. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	From InvoiceStatus
	To   InvoiceStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition invoice from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CanTransition reports whether the lifecycle table permits moving from
// current to requested.
func CanTransition(current, requested InvoiceStatus) bool {
	for _, allowed := range validTransitions[current] {
		if allowed == requested {
			return true
		}
	}
	return false
}

// Transition validates a status change against the lifecycle table and
// returns the new status, or an *InvalidTransitionError for any pair not in
// the table (including unknown states, which have no outgoing transitions).
func Transition(current, requested InvoiceStatus) (InvoiceStatus, error) {
	if !CanTransition(current, requested) {
		return current, &InvalidTransitionError{From: current, To: requested}
	}
	return requested, nil
}

// CanEdit reports whether an invoice in this status may have its line items
// or tax options modified. Any other status requires a transition instead.
func (s InvoiceStatus) CanEdit() bool {
	return s == StatusDraft
}

// CanDelete reports whether an invoice in this status may be deleted
// outright. Deletion never reclaims the invoice's sequence number.
func (s InvoiceStatus) CanDelete() bool {
	return s == StatusDraft
}

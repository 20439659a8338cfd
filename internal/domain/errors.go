package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrEnrichmentUnavailable marks the case where the supplier returned
	// hotels but none of their codes exist in the local content store. This is
	// distinct from an empty search result, which is a success.
	ErrEnrichmentUnavailable = errors.New("no local content found for supplier hotels")
)

// ValidationError reports the first failing input check. Room is 1-based and
// zero when the error is not scoped to a room.
type ValidationError struct {
	Room   int
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Room > 0 {
		return fmt.Sprintf("room %d: %s", e.Room, e.Detail)
	}
	return e.Detail
}

// GuestValidationError aggregates every guest-manifest failure across all
// rooms, unlike ValidationError which short-circuits on the first problem.
type GuestValidationError struct {
	Problems []GuestProblem
}

type GuestProblem struct {
	Room   int
	Guest  string // e.g. "Adult 1", "Child 2"
	Issues []string
}

func (e *GuestValidationError) Error() string {
	msg := "please complete all guest information:"
	for _, p := range e.Problems {
		msg += fmt.Sprintf(" room %d, %s:", p.Room, p.Guest)
		for i, is := range p.Issues {
			if i > 0 {
				msg += ","
			}
			msg += " " + is
		}
		msg += ";"
	}
	return msg
}

// SupplierError is a non-2xx answer from the remote supplier. Detail carries
// the supplier's own error payload, or the raw body when it was not JSON.
type SupplierError struct {
	Status int
	Detail string
}

func (e *SupplierError) Error() string {
	return fmt.Sprintf("supplier error (%d): %s", e.Status, e.Detail)
}

// TransportError is a network-level failure (timeout, connection, TLS) with no
// supplier payload attached.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// PersistenceError wraps a local store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// OrphanedBookingError is the critical partial-failure case: the supplier has
// confirmed a reservation but the local booking record could not be written.
// It must be logged with the supplier reference for manual reconciliation.
type OrphanedBookingError struct {
	Reference string
	Err       error
}

func (e *OrphanedBookingError) Error() string {
	return fmt.Sprintf("orphaned booking %s: supplier confirmed but local persistence failed: %v", e.Reference, e.Err)
}
func (e *OrphanedBookingError) Unwrap() error { return e.Err }

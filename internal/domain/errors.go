package domain

import (
	"errors"
	"fmt"
	"time"
)

// Stable error conditions surfaced by the event lifecycle engine. Callers
// match these with errors.Is; the typed errors below carry details and are
// matched with errors.As.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidState     = errors.New("invalid event state")
	ErrVenueUnavailable = errors.New("venue unavailable")
	ErrDeliveryFailure  = errors.New("notification delivery failed")
)

// StateConflictError is returned when a lifecycle transition is requested
// from a status the transition table does not allow. Required lists the
// statuses the event would need to be in for the action to succeed.
type StateConflictError struct {
	Action   string
	Current  EventStatus
	Required []EventStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s event in status %s (requires one of %v)", e.Action, e.Current, e.Required)
}

func (e *StateConflictError) Unwrap() error { return ErrInvalidState }

// VenueConflictError is returned when a requested booking window overlaps an
// existing active booking at the same venue. It carries the conflicting
// window so callers can propose an alternative.
type VenueConflictError struct {
	VenueID            string
	RequestedStart     time.Time
	RequestedEnd       time.Time
	ConflictingEventID string
	ConflictingStart   time.Time
	ConflictingEnd     time.Time
}

func (e *VenueConflictError) Error() string {
	if e.ConflictingEventID == "" {
		return fmt.Sprintf("venue %s is not available for [%s, %s)",
			e.VenueID, e.RequestedStart.Format(time.RFC3339), e.RequestedEnd.Format(time.RFC3339))
	}
	return fmt.Sprintf("venue %s is not available for [%s, %s): event %s occupies [%s, %s)",
		e.VenueID,
		e.RequestedStart.Format(time.RFC3339), e.RequestedEnd.Format(time.RFC3339),
		e.ConflictingEventID,
		e.ConflictingStart.Format(time.RFC3339), e.ConflictingEnd.Format(time.RFC3339))
}

func (e *VenueConflictError) Unwrap() error { return ErrVenueUnavailable }

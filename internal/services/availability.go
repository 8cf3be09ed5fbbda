package services

import (
	"context"
	"fmt"
	"time"

	"eventmanagement/internal/domain"
)

// AvailabilityChecker decides whether a venue is free for a booking window.
// It is a pure query over active events at the venue; repository failures
// propagate as retrieval errors, never as business errors.
type AvailabilityChecker struct {
	events domain.EventRepository
}

func NewAvailabilityChecker(events domain.EventRepository) *AvailabilityChecker {
	return &AvailabilityChecker{events: events}
}

// Overlaps reports whether the half-open windows [s1, e1) and [s2, e2)
// intersect. Windows that merely touch (e1 == s2) do not overlap, so
// back-to-back bookings are permitted.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Check returns the first active event at venueID whose booking window
// overlaps [start, end), skipping excludeEventID. A nil conflict means the
// venue is available.
func (c *AvailabilityChecker) Check(ctx context.Context, venueID string, start, end time.Time, excludeEventID string) (*domain.VenueConflictError, error) {
	candidates, err := c.events.ListOverlapping(ctx, venueID, start, end, excludeEventID)
	if err != nil {
		return nil, fmt.Errorf("list overlapping events: %w", err)
	}
	for _, e := range candidates {
		if e.ID == excludeEventID || !e.Status.Active() {
			continue
		}
		if Overlaps(start, end, e.BookingStartDate, e.BookingEndDate) {
			return &domain.VenueConflictError{
				VenueID:            venueID,
				RequestedStart:     start,
				RequestedEnd:       end,
				ConflictingEventID: e.ID,
				ConflictingStart:   e.BookingStartDate,
				ConflictingEnd:     e.BookingEndDate,
			}, nil
		}
	}
	return nil, nil
}

// IsAvailable reports whether the venue is free for the window.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, venueID string, start, end time.Time, excludeEventID string) (bool, error) {
	conflict, err := c.Check(ctx, venueID, start, end, excludeEventID)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}

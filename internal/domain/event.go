package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	StatusDraft           EventStatus = "DRAFT"
	StatusPendingApproval EventStatus = "PENDING_APPROVAL"
	StatusPublished       EventStatus = "PUBLISHED"
	StatusRejected        EventStatus = "REJECTED"
	StatusCancelled       EventStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusPublished, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether an event in this status occupies its venue's
// booking window. DRAFT, REJECTED and CANCELLED events never conflict
// with anything.
func (s EventStatus) Active() bool {
	return s == StatusPublished || s == StatusPendingApproval
}

// Event represents an event scheduled at a venue. The booking window is the
// half-open interval [BookingStartDate, BookingEndDate).
// swagger:model Event
type Event struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	Description      string      `json:"description"`
	BannerImage      string      `json:"banner_image"`
	SpeakerID        string      `json:"speaker_id"`
	SpeakerName      *string     `json:"speaker_name,omitempty"`
	SpeakerEmail     *string     `json:"speaker_email,omitempty"`
	VenueID          string      `json:"venue_id"`
	BookingStartDate time.Time   `json:"booking_start_date"`
	BookingEndDate   time.Time   `json:"booking_end_date"`
	Status           EventStatus `json:"status"`
	RejectionReason  *string     `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID    string
	Admin bool
}

// TimeFrame is a coarse temporal bucket for event listings, evaluated
// against wall-clock time.
type TimeFrame string

const (
	TimeFrameAll      TimeFrame = "ALL"
	TimeFrameUpcoming TimeFrame = "UPCOMING"
	TimeFrameOngoing  TimeFrame = "ONGOING"
	TimeFramePast     TimeFrame = "PAST"
)

// EventFilter narrows event listings. Zero values mean "no filter".
// IncludePrivate=false restricts results to PUBLISHED events regardless of
// the Status field.
type EventFilter struct {
	Status         *EventStatus
	Category       string
	VenueID        string
	SpeakerID      string
	From           *time.Time
	To             *time.Time
	Search         string
	TimeFrame      TimeFrame
	IncludePrivate bool
}

// EventPatch carries partial updates. Nil fields are left unchanged.
type EventPatch struct {
	Name             *string
	Category         *string
	Description      *string
	BannerImage      *string
	VenueID          *string
	BookingStartDate *time.Time
	BookingEndDate   *time.Time
}

// CreateEventInput carries the fields accepted when creating an event.
type CreateEventInput struct {
	Name             string
	Category         string
	Description      string
	BannerImage      string
	VenueID          string
	BookingStartDate time.Time
	BookingEndDate   time.Time
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	ListBySpeakerID(ctx context.Context, speakerID string, includePrivate bool) ([]*Event, error)
	// ListOverlapping returns events at the venue whose status is active and
	// whose booking window overlaps [start, end), excluding excludeEventID
	// when non-empty.
	ListOverlapping(ctx context.Context, venueID string, start, end time.Time, excludeEventID string) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService is the caller-facing surface of the event lifecycle engine.
// Approve, reject and cancel are admin-only; the delivery layer guards them.
type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput, actor Actor) (*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch, actor Actor) (*Event, error)
	SubmitEvent(ctx context.Context, id string, actor Actor) (*Event, error)
	ApproveEvent(ctx context.Context, id string) (*Event, error)
	RejectEvent(ctx context.Context, id, reason string) (*Event, error)
	CancelEvent(ctx context.Context, id string) (*Event, error)
	DeleteEvent(ctx context.Context, id string, actor Actor) error
	GetEventByID(ctx context.Context, id string, includePrivate bool) (*Event, error)
	GetEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	GetEventsBySpeaker(ctx context.Context, speakerID string, includePrivate bool) ([]*Event, error)
}

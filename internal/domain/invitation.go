package domain

import (
	"context"
	"time"
)

// SpeakerInvitation represents an email invited to speak at an event.
// Invitations are dependent records: deleting an event cleans them up.
// swagger:model SpeakerInvitation
type SpeakerInvitation struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Email   string    `json:"email"`
	SentAt  time.Time `json:"sent_at"`
}

// SpeakerInvitationRepository defines storage operations for speaker invitations.
type SpeakerInvitationRepository interface {
	Create(ctx context.Context, inv *SpeakerInvitation) error
	ListByEventID(ctx context.Context, eventID string) ([]*SpeakerInvitation, error)
	// DeleteByEventID removes all invitations for the event and returns how
	// many rows were deleted.
	DeleteByEventID(ctx context.Context, eventID string) (int64, error)
}

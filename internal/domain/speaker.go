package domain

import "context"

// SpeakerInfo is display metadata for the user who owns an event, resolved
// from the identity service.
type SpeakerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SpeakerInfoResolver resolves a user id to display metadata. The lookup is
// strictly best-effort: any failure (timeout, non-200 response, malformed
// payload) yields ok=false, never an error. Callers proceed without speaker
// metadata when the lookup comes back absent.
type SpeakerInfoResolver interface {
	Resolve(ctx context.Context, userID string) (info *SpeakerInfo, ok bool)
}

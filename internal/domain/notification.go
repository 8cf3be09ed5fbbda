package domain

import (
	"context"
	"time"
)

// DeliveryMode distinguishes notifications that are contractually required
// side effects of a lifecycle operation from those that are fire-and-forget.
type DeliveryMode int

const (
	// MustDeliver: an unacknowledged publish fails the triggering operation
	// with ErrDeliveryFailure, even though the status change may already be
	// committed.
	MustDeliver DeliveryMode = iota
	// BestEffort: publish failures are logged and absorbed.
	BestEffort
)

// EventMessage is the JSON body delivered to downstream consumers.
// MessageID is unique per publish so consumers can deduplicate under
// at-least-once delivery.
type EventMessage struct {
	MessageID string         `json:"message_id"`
	Operation string         `json:"operation"`
	EventID   string         `json:"event_id"`
	Event     *Event         `json:"event,omitempty"`
	Changes   map[string]any `json:"changes,omitempty"`
	EmittedAt time.Time      `json:"emitted_at"`
}

// EventNotifier emits cross-service event notifications. Published, updated
// and cancelled notifications use MustDeliver; deleted notifications are
// BestEffort and never return an error.
type EventNotifier interface {
	EventPublished(ctx context.Context, e *Event) error
	EventUpdated(ctx context.Context, eventID string, changes map[string]any) error
	EventCancelled(ctx context.Context, eventID string) error
	EventDeleted(ctx context.Context, eventID string) error
}

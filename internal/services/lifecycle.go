package services

import (
	"eventmanagement/internal/domain"
)

// Action is a lifecycle trigger requested against an event.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

// transitions is the authoritative transition table. Every mutating
// operation consults it through NextStatus; no status comparison for a
// transition lives anywhere else.
//
//	DRAFT            -> PENDING_APPROVAL  (submit, owning speaker)
//	REJECTED         -> PENDING_APPROVAL  (resubmit, owning speaker)
//	PENDING_APPROVAL -> PUBLISHED         (approve, admin)
//	PENDING_APPROVAL -> REJECTED          (reject, admin)
//	PUBLISHED        -> CANCELLED         (cancel, admin)
var transitions = map[Action]struct {
	from []domain.EventStatus
	to   domain.EventStatus
}{
	ActionSubmit:  {from: []domain.EventStatus{domain.StatusDraft, domain.StatusRejected}, to: domain.StatusPendingApproval},
	ActionApprove: {from: []domain.EventStatus{domain.StatusPendingApproval}, to: domain.StatusPublished},
	ActionReject:  {from: []domain.EventStatus{domain.StatusPendingApproval}, to: domain.StatusRejected},
	ActionCancel:  {from: []domain.EventStatus{domain.StatusPublished}, to: domain.StatusCancelled},
}

// NextStatus validates the requested action against the current status and
// returns the resulting status. A disallowed transition yields a
// StateConflictError naming the required source statuses.
func NextStatus(action Action, current domain.EventStatus) (domain.EventStatus, error) {
	t, ok := transitions[action]
	if !ok {
		return "", &domain.StateConflictError{Action: string(action), Current: current}
	}
	for _, from := range t.from {
		if current == from {
			return t.to, nil
		}
	}
	return "", &domain.StateConflictError{Action: string(action), Current: current, Required: t.from}
}

// InitialStatus is the status assigned at creation: admin-authored events go
// live immediately, everything else starts as a draft.
func InitialStatus(actor domain.Actor) domain.EventStatus {
	if actor.Admin {
		return domain.StatusPublished
	}
	return domain.StatusDraft
}

// OwnerMutable reports whether the owning speaker may update or delete an
// event in this status without admin privilege.
func OwnerMutable(status domain.EventStatus) bool {
	return status == domain.StatusDraft || status == domain.StatusRejected
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	invitationRepo domain.SpeakerInvitationRepository
	availability   *AvailabilityChecker
	notifier       domain.EventNotifier
	resolver       domain.SpeakerInfoResolver
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	invitationRepo domain.SpeakerInvitationRepository,
	availability *AvailabilityChecker,
	notifier domain.EventNotifier,
	resolver domain.SpeakerInfoResolver,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		invitationRepo: invitationRepo,
		availability:   availability,
		notifier:       notifier,
		resolver:       resolver,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// validateWindow enforces ordering of the booking window. requireFuture is
// set at creation time only: existing events keep their window when other
// fields change.
func validateWindow(start, end time.Time, requireFuture bool) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("booking window is required: %w", domain.ErrInvalidInput)
	}
	if !start.Before(end) {
		return fmt.Errorf("booking start must precede booking end: %w", domain.ErrInvalidInput)
	}
	if requireFuture && start.Before(time.Now()) {
		return fmt.Errorf("booking start must not be in the past: %w", domain.ErrInvalidInput)
	}
	return nil
}

// checkVenue verifies the venue exists. A missing venue is an input error,
// not a not-found: the event operation referenced something that does not exist.
func (s *eventService) checkVenue(ctx context.Context, venueID string) error {
	if venueID == "" {
		return fmt.Errorf("venue is required: %w", domain.ErrInvalidInput)
	}
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("venue %s does not exist: %w", venueID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("get venue: %w", err)
	}
	return nil
}

// resolveSpeaker fills in display metadata for the owning speaker.
// Best-effort: an absent lookup leaves the fields unset.
func (s *eventService) resolveSpeaker(ctx context.Context, e *domain.Event) {
	info, ok := s.resolver.Resolve(ctx, e.SpeakerID)
	if !ok {
		s.logger.WarnContext(ctx, "speaker info unavailable, proceeding without display metadata",
			"speaker_id", e.SpeakerID, "event_id", e.ID)
		return
	}
	if info.Name != "" {
		e.SpeakerName = &info.Name
	}
	if info.Email != "" {
		e.SpeakerEmail = &info.Email
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.CreateEventInput, actor domain.Actor) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("event name is required: %w", domain.ErrInvalidInput)
	}
	if err := validateWindow(input.BookingStartDate, input.BookingEndDate, true); err != nil {
		return nil, err
	}
	if err := s.checkVenue(ctx, input.VenueID); err != nil {
		return nil, err
	}
	conflict, err := s.availability.Check(ctx, input.VenueID, input.BookingStartDate, input.BookingEndDate, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	now := time.Now()
	event := &domain.Event{
		Name:             strings.TrimSpace(input.Name),
		Category:         input.Category,
		Description:      input.Description,
		BannerImage:      input.BannerImage,
		SpeakerID:        actor.ID,
		VenueID:          input.VenueID,
		BookingStartDate: input.BookingStartDate,
		BookingEndDate:   input.BookingEndDate,
		Status:           InitialStatus(actor),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.resolveSpeaker(ctx, event)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrVenueUnavailable) {
			// A concurrent booking won the race; report it like the pre-check would.
			return nil, &domain.VenueConflictError{
				VenueID:        input.VenueID,
				RequestedStart: input.BookingStartDate,
				RequestedEnd:   input.BookingEndDate,
			}
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	if event.Status == domain.StatusPublished {
		if err := s.notifier.EventPublished(ctx, event); err != nil {
			// The record is committed; the caller must treat this as
			// "state changed, notify uncertain".
			return nil, err
		}
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch, actor domain.Actor) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.SpeakerID != actor.ID && !actor.Admin {
		return nil, domain.ErrForbidden
	}
	if !OwnerMutable(event.Status) {
		// Admins may additionally edit a live event; everyone else is
		// restricted to draft and rejected events.
		if !(actor.Admin && event.Status == domain.StatusPublished) {
			required := []domain.EventStatus{domain.StatusDraft, domain.StatusRejected}
			if actor.Admin {
				required = append(required, domain.StatusPublished)
			}
			return nil, &domain.StateConflictError{Action: "update", Current: event.Status, Required: required}
		}
	}

	changes := applyPatch(event, patch)
	if len(changes) == 0 {
		return event, nil
	}

	if patch.VenueID != nil || patch.BookingStartDate != nil || patch.BookingEndDate != nil {
		if err := validateWindow(event.BookingStartDate, event.BookingEndDate, false); err != nil {
			return nil, err
		}
		if patch.VenueID != nil {
			if err := s.checkVenue(ctx, event.VenueID); err != nil {
				return nil, err
			}
		}
		conflict, err := s.availability.Check(ctx, event.VenueID, event.BookingStartDate, event.BookingEndDate, event.ID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, conflict
		}
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrVenueUnavailable) {
			return nil, &domain.VenueConflictError{
				VenueID:        event.VenueID,
				RequestedStart: event.BookingStartDate,
				RequestedEnd:   event.BookingEndDate,
			}
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	// Downstream consumers were already told about a published event, so any
	// change to one must be propagated. The delta carries every changed
	// field; consumers decide which ones they care about.
	if event.Status == domain.StatusPublished {
		if err := s.notifier.EventUpdated(ctx, event.ID, changes); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// applyPatch merges non-nil patch fields into the event and returns the
// changed-field delta keyed by wire name. Fields set to their current value
// do not count as changes.
func applyPatch(e *domain.Event, patch domain.EventPatch) map[string]any {
	changes := make(map[string]any)
	if patch.Name != nil && *patch.Name != e.Name {
		e.Name = *patch.Name
		changes["name"] = e.Name
	}
	if patch.Category != nil && *patch.Category != e.Category {
		e.Category = *patch.Category
		changes["category"] = e.Category
	}
	if patch.Description != nil && *patch.Description != e.Description {
		e.Description = *patch.Description
		changes["description"] = e.Description
	}
	if patch.BannerImage != nil && *patch.BannerImage != e.BannerImage {
		e.BannerImage = *patch.BannerImage
		changes["banner_image"] = e.BannerImage
	}
	if patch.VenueID != nil && *patch.VenueID != e.VenueID {
		e.VenueID = *patch.VenueID
		changes["venue_id"] = e.VenueID
	}
	if patch.BookingStartDate != nil && !patch.BookingStartDate.Equal(e.BookingStartDate) {
		e.BookingStartDate = *patch.BookingStartDate
		changes["booking_start_date"] = e.BookingStartDate
	}
	if patch.BookingEndDate != nil && !patch.BookingEndDate.Equal(e.BookingEndDate) {
		e.BookingEndDate = *patch.BookingEndDate
		changes["booking_end_date"] = e.BookingEndDate
	}
	return changes
}

func (s *eventService) SubmitEvent(ctx context.Context, id string, actor domain.Actor) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.SpeakerID != actor.ID && !actor.Admin {
		return nil, domain.ErrForbidden
	}
	next, err := NextStatus(ActionSubmit, event.Status)
	if err != nil {
		return nil, err
	}

	event.Status = next
	event.RejectionReason = nil
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrVenueUnavailable) {
			// Entering PENDING_APPROVAL starts counting toward venue
			// occupancy; another booking may have landed since the draft
			// was created.
			return nil, &domain.VenueConflictError{
				VenueID:        event.VenueID,
				RequestedStart: event.BookingStartDate,
				RequestedEnd:   event.BookingEndDate,
			}
		}
		return nil, fmt.Errorf("submit event: %w", err)
	}
	return event, nil
}

func (s *eventService) ApproveEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	next, err := NextStatus(ActionApprove, event.Status)
	if err != nil {
		return nil, err
	}

	s.resolveSpeaker(ctx, event)
	event.Status = next
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("approve event: %w", err)
	}

	// The published notification is a required side effect of approval.
	if err := s.notifier.EventPublished(ctx, event); err != nil {
		return nil, err
	}

	s.sendDecisionEmail(ctx, event, "")
	return event, nil
}

func (s *eventService) RejectEvent(ctx context.Context, id, reason string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("rejection reason is required: %w", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	next, err := NextStatus(ActionReject, event.Status)
	if err != nil {
		return nil, err
	}

	event.Status = next
	event.RejectionReason = &reason
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("reject event: %w", err)
	}

	s.sendDecisionEmail(ctx, event, reason)
	return event, nil
}

func (s *eventService) CancelEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	next, err := NextStatus(ActionCancel, event.Status)
	if err != nil {
		return nil, err
	}

	event.Status = next
	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("cancel event: %w", err)
	}

	if err := s.notifier.EventCancelled(ctx, event.ID); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !actor.Admin {
		if event.SpeakerID != actor.ID {
			return domain.ErrForbidden
		}
		if event.Status != domain.StatusDraft {
			return &domain.StateConflictError{Action: "delete", Current: event.Status, Required: []domain.EventStatus{domain.StatusDraft}}
		}
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	// Cleanup of dependent records and the deleted notification are both
	// best-effort; failures are logged and never fail the delete.
	if _, err := s.invitationRepo.DeleteByEventID(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to clean up speaker invitations", "event_id", id, "err", err)
	}
	if err := s.notifier.EventDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit deleted notification", "event_id", id, "err", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string, includePrivate bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !includePrivate && event.Status != domain.StatusPublished {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *eventService) GetEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !filter.IncludePrivate {
		published := domain.StatusPublished
		filter.Status = &published
	}
	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) GetEventsBySpeaker(ctx context.Context, speakerID string, includePrivate bool) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListBySpeakerID(ctx, speakerID, includePrivate)
	if err != nil {
		return nil, fmt.Errorf("list events by speaker: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// sendDecisionEmail tells the owning speaker about an approval or rejection.
// Best-effort: without a resolved speaker email there is nothing to send.
func (s *eventService) sendDecisionEmail(ctx context.Context, event *domain.Event, reason string) {
	if s.emailService == nil || event.SpeakerEmail == nil {
		return
	}
	name := ""
	if event.SpeakerName != nil {
		name = *event.SpeakerName
	}
	var err error
	if reason == "" {
		err = s.emailService.SendEventApproved(ctx, &domain.EventApprovedEmailData{
			Email:            *event.SpeakerEmail,
			SpeakerName:      name,
			EventName:        event.Name,
			BookingStartDate: event.BookingStartDate.Format(time.RFC1123),
		})
	} else {
		err = s.emailService.SendEventRejected(ctx, &domain.EventRejectedEmailData{
			Email:       *event.SpeakerEmail,
			SpeakerName: name,
			EventName:   event.Name,
			Reason:      reason,
		})
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to send decision email", "event_id", event.ID, "err", err)
	}
}

package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	updateErr error
	listErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.VenueID != "" && e.VenueID != filter.VenueID {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) ListBySpeakerID(ctx context.Context, speakerID string, includePrivate bool) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.SpeakerID != speakerID {
			continue
		}
		if !includePrivate && e.Status != domain.StatusPublished {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListOverlapping(ctx context.Context, venueID string, start, end time.Time, excludeEventID string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.VenueID != venueID || !e.Status.Active() || e.ID == excludeEventID {
			continue
		}
		if Overlaps(start, end, e.BookingStartDate, e.BookingEndDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *e
	f.byID[e.ID] = &copied
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeVenueRepo is an in-memory VenueRepository for tests.
type fakeVenueRepo struct {
	byID map[string]*domain.Venue
}

func newFakeVenueRepo(ids ...string) *fakeVenueRepo {
	f := &fakeVenueRepo{byID: make(map[string]*domain.Venue)}
	for _, id := range ids {
		f.byID[id] = &domain.Venue{ID: id, Name: "Venue " + id, Capacity: 100}
	}
	return f
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) List(ctx context.Context) ([]*domain.Venue, error) {
	var out []*domain.Venue
	for _, v := range f.byID {
		out = append(out, v)
	}
	return out, nil
}

// fakeInvitationRepo records speaker invitation cleanup calls.
type fakeInvitationRepo struct {
	deletedEventIDs []string
	deleteErr       error
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.SpeakerInvitation) error {
	return nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.SpeakerInvitation, error) {
	return nil, nil
}

func (f *fakeInvitationRepo) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedEventIDs = append(f.deletedEventIDs, eventID)
	return 1, nil
}

// fakeNotifier records emitted notifications and can fail on demand.
type fakeNotifier struct {
	published    []*domain.Event
	updated      []map[string]any
	cancelled    []string
	deleted      []string
	publishedErr error
	updatedErr   error
	cancelledErr error
	deletedErr   error
}

func (f *fakeNotifier) EventPublished(ctx context.Context, e *domain.Event) error {
	if f.publishedErr != nil {
		return f.publishedErr
	}
	f.published = append(f.published, e)
	return nil
}

func (f *fakeNotifier) EventUpdated(ctx context.Context, eventID string, changes map[string]any) error {
	if f.updatedErr != nil {
		return f.updatedErr
	}
	f.updated = append(f.updated, changes)
	return nil
}

func (f *fakeNotifier) EventCancelled(ctx context.Context, eventID string) error {
	if f.cancelledErr != nil {
		return f.cancelledErr
	}
	f.cancelled = append(f.cancelled, eventID)
	return nil
}

func (f *fakeNotifier) EventDeleted(ctx context.Context, eventID string) error {
	if f.deletedErr != nil {
		return f.deletedErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

// fakeResolver returns fixed speaker info, or absent when ok is false.
type fakeResolver struct {
	info *domain.SpeakerInfo
	ok   bool
}

func (f *fakeResolver) Resolve(ctx context.Context, userID string) (*domain.SpeakerInfo, bool) {
	if !f.ok {
		return nil, false
	}
	return f.info, true
}

// fakeEmailService records decision emails.
type fakeEmailService struct {
	approved []string
	rejected []string
}

func (f *fakeEmailService) SendEventApproved(ctx context.Context, data *domain.EventApprovedEmailData) error {
	f.approved = append(f.approved, data.Email)
	return nil
}

func (f *fakeEmailService) SendEventRejected(ctx context.Context, data *domain.EventRejectedEmailData) error {
	f.rejected = append(f.rejected, data.Email)
	return nil
}

type testEnv struct {
	svc         domain.EventService
	events      *fakeEventRepo
	venues      *fakeVenueRepo
	invitations *fakeInvitationRepo
	notifier    *fakeNotifier
	resolver    *fakeResolver
	emails      *fakeEmailService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		events:      newFakeEventRepo(),
		venues:      newFakeVenueRepo("venue-1", "venue-2"),
		invitations: &fakeInvitationRepo{},
		notifier:    &fakeNotifier{},
		resolver:    &fakeResolver{info: &domain.SpeakerInfo{ID: "sp-1", Name: "Ada", Email: "ada@example.com"}, ok: true},
		emails:      &fakeEmailService{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.svc = NewEventService(
		env.events, env.venues, env.invitations,
		NewAvailabilityChecker(env.events),
		env.notifier, env.resolver, env.emails,
		logger, 5*time.Second,
	)
	return env
}

func futureWindow(days, hours int) (time.Time, time.Time) {
	start := time.Now().Add(time.Duration(days) * 24 * time.Hour).Truncate(time.Minute)
	return start, start.Add(time.Duration(hours) * time.Hour)
}

func validInput(venueID string) domain.CreateEventInput {
	start, end := futureWindow(30, 2)
	return domain.CreateEventInput{
		Name:             "Go Conference",
		Category:         "tech",
		Description:      "A conference about Go",
		VenueID:          venueID,
		BookingStartDate: start,
		BookingEndDate:   end,
	}
}

var (
	speaker = domain.Actor{ID: "sp-1"}
	admin   = domain.Actor{ID: "adm-1", Admin: true}
)

func TestCreateEvent_AdminPublishesImmediately(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, event.Status)
	assert.Equal(t, admin.ID, event.SpeakerID)
	require.Len(t, env.notifier.published, 1)
	assert.Equal(t, event.ID, env.notifier.published[0].ID)
}

func TestCreateEvent_SpeakerGetsDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, event.Status)
	assert.Empty(t, env.notifier.published)
	require.NotNil(t, event.SpeakerName)
	assert.Equal(t, "Ada", *event.SpeakerName)
}

func TestCreateEvent_SpeakerInfoAbsent(t *testing.T) {
	env := newTestEnv()
	env.resolver.ok = false
	ctx := context.Background()

	event, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	assert.Nil(t, event.SpeakerName)
	assert.Nil(t, event.SpeakerEmail)
}

func TestCreateEvent_InputValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	t.Run("start after end", func(t *testing.T) {
		input := validInput("venue-1")
		input.BookingStartDate, input.BookingEndDate = input.BookingEndDate, input.BookingStartDate
		_, err := env.svc.CreateEvent(ctx, input, speaker)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("start in the past", func(t *testing.T) {
		input := validInput("venue-1")
		input.BookingStartDate = time.Now().Add(-time.Hour)
		_, err := env.svc.CreateEvent(ctx, input, speaker)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing name", func(t *testing.T) {
		input := validInput("venue-1")
		input.Name = "   "
		_, err := env.svc.CreateEvent(ctx, input, speaker)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown venue", func(t *testing.T) {
		_, err := env.svc.CreateEvent(ctx, validInput("venue-nope"), speaker)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	// No mutation happened for any of the rejected inputs.
	assert.Empty(t, env.events.byID)
	assert.Empty(t, env.notifier.published)
}

func TestCreateEvent_VenueConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.NoError(t, err)

	// Same venue, overlapping window.
	input := validInput("venue-1")
	input.BookingStartDate = first.BookingStartDate.Add(30 * time.Minute)
	input.BookingEndDate = first.BookingEndDate.Add(30 * time.Minute)
	_, err = env.svc.CreateEvent(ctx, input, speaker)
	require.ErrorIs(t, err, domain.ErrVenueUnavailable)

	var conflict *domain.VenueConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "venue-1", conflict.VenueID)
	assert.Equal(t, first.ID, conflict.ConflictingEventID)

	// No record persisted.
	assert.Len(t, env.events.byID, 1)
}

func TestCreateEvent_BackToBackWindows(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.NoError(t, err)

	// [10:00,11:00) followed by [11:00,12:00): touching, not overlapping.
	input := validInput("venue-1")
	input.BookingStartDate = first.BookingEndDate
	input.BookingEndDate = first.BookingEndDate.Add(time.Hour)
	_, err = env.svc.CreateEvent(ctx, input, speaker)
	require.NoError(t, err)

	// Same venue but a different, unrelated venue id is always fine.
	_, err = env.svc.CreateEvent(ctx, validInput("venue-2"), speaker)
	require.NoError(t, err)
}

func TestCreateEvent_MandatoryNotificationFailure(t *testing.T) {
	env := newTestEnv()
	env.notifier.publishedErr = domain.ErrDeliveryFailure
	ctx := context.Background()

	_, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.ErrorIs(t, err, domain.ErrDeliveryFailure)
	// The record is committed even though the call failed.
	assert.Len(t, env.events.byID, 1)
}

func TestLifecycle_RoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDraft, created.Status)

	submitted, err := env.svc.SubmitEvent(ctx, created.ID, speaker)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, submitted.Status)

	approved, err := env.svc.ApproveEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, approved.Status)

	// Exactly one published notification with the matching event id.
	require.Len(t, env.notifier.published, 1)
	assert.Equal(t, created.ID, env.notifier.published[0].ID)
	// The owning speaker was told by email.
	assert.Equal(t, []string{"ada@example.com"}, env.emails.approved)
}

func TestApproveEvent_Idempotence(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	_, err = env.svc.SubmitEvent(ctx, created.ID, speaker)
	require.NoError(t, err)
	_, err = env.svc.ApproveEvent(ctx, created.ID)
	require.NoError(t, err)

	_, err = env.svc.ApproveEvent(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	// No duplicate notification.
	assert.Len(t, env.notifier.published, 1)
}

func TestRejectAndResubmit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	_, err = env.svc.SubmitEvent(ctx, created.ID, speaker)
	require.NoError(t, err)

	rejected, err := env.svc.RejectEvent(ctx, created.ID, "incomplete")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "incomplete", *rejected.RejectionReason)
	assert.Equal(t, []string{"ada@example.com"}, env.emails.rejected)

	resubmitted, err := env.svc.SubmitEvent(ctx, created.ID, speaker)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingApproval, resubmitted.Status)
	assert.Nil(t, resubmitted.RejectionReason)
}

func TestRejectEvent_ReasonRequired(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	_, err = env.svc.SubmitEvent(ctx, created.ID, speaker)
	require.NoError(t, err)

	_, err = env.svc.RejectEvent(ctx, created.ID, "  ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitEvent_Authorization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)

	_, err = env.svc.SubmitEvent(ctx, created.ID, domain.Actor{ID: "someone-else"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// Admins can submit on the owner's behalf.
	_, err = env.svc.SubmitEvent(ctx, created.ID, admin)
	require.NoError(t, err)
}

func TestUpdateEvent_Authorization(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)

	newName := "Renamed"
	_, err = env.svc.UpdateEvent(ctx, created.ID, domain.EventPatch{Name: &newName}, domain.Actor{ID: "someone-else"})
	require.ErrorIs(t, err, domain.ErrForbidden)

	// The same update as admin succeeds regardless of ownership.
	updated, err := env.svc.UpdateEvent(ctx, created.ID, domain.EventPatch{Name: &newName}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateEvent_StateRules(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	_, err = env.svc.SubmitEvent(ctx, created.ID, speaker)
	require.NoError(t, err)

	newName := "Renamed"
	_, err = env.svc.UpdateEvent(ctx, created.ID, domain.EventPatch{Name: &newName}, speaker)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = env.svc.ApproveEvent(ctx, created.ID)
	require.NoError(t, err)

	// Owner still cannot edit a published event.
	_, err = env.svc.UpdateEvent(ctx, created.ID, domain.EventPatch{Name: &newName}, speaker)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	// Admin can, and downstream consumers hear about it.
	updated, err := env.svc.UpdateEvent(ctx, created.ID, domain.EventPatch{Name: &newName}, admin)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, env.notifier.updated, 1)
	assert.Contains(t, env.notifier.updated[0], "name")
}

func TestUpdateEvent_WindowRevalidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.NoError(t, err)

	input := validInput("venue-2")
	second, err := env.svc.CreateEvent(ctx, input, admin)
	require.NoError(t, err)

	t.Run("merged window ordering", func(t *testing.T) {
		badEnd := second.BookingStartDate.Add(-time.Hour)
		_, err := env.svc.UpdateEvent(ctx, second.ID, domain.EventPatch{BookingEndDate: &badEnd}, admin)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("moving onto an occupied venue conflicts", func(t *testing.T) {
		venue1 := "venue-1"
		_, err := env.svc.UpdateEvent(ctx, second.ID, domain.EventPatch{VenueID: &venue1}, admin)
		require.ErrorIs(t, err, domain.ErrVenueUnavailable)
	})

	t.Run("own window does not conflict with itself", func(t *testing.T) {
		shifted := first.BookingStartDate.Add(15 * time.Minute)
		_, err := env.svc.UpdateEvent(ctx, first.ID, domain.EventPatch{BookingStartDate: &shifted}, admin)
		require.NoError(t, err)
	})
}

func TestUpdateEvent_NoChangesNoNotification(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.NoError(t, err)

	same := created.Name
	_, err = env.svc.UpdateEvent(ctx, created.ID, domain.EventPatch{Name: &same}, admin)
	require.NoError(t, err)
	assert.Empty(t, env.notifier.updated)
}

func TestCancelEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
	require.NoError(t, err)

	cancelled, err := env.svc.CancelEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, []string{created.ID}, env.notifier.cancelled)

	_, err = env.svc.CancelEvent(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes own draft", func(t *testing.T) {
		env := newTestEnv()
		created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
		require.NoError(t, err)

		require.NoError(t, env.svc.DeleteEvent(ctx, created.ID, speaker))
		assert.Empty(t, env.events.byID)
		assert.Equal(t, []string{created.ID}, env.invitations.deletedEventIDs)
		assert.Equal(t, []string{created.ID}, env.notifier.deleted)
	})

	t.Run("owner cannot delete a submitted event", func(t *testing.T) {
		env := newTestEnv()
		created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
		require.NoError(t, err)
		_, err = env.svc.SubmitEvent(ctx, created.ID, speaker)
		require.NoError(t, err)

		err = env.svc.DeleteEvent(ctx, created.ID, speaker)
		require.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		env := newTestEnv()
		created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
		require.NoError(t, err)

		err = env.svc.DeleteEvent(ctx, created.ID, domain.Actor{ID: "someone-else"})
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin deletes any status", func(t *testing.T) {
		env := newTestEnv()
		created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), admin)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPublished, created.Status)

		require.NoError(t, env.svc.DeleteEvent(ctx, created.ID, admin))
	})

	t.Run("cleanup failure never fails the delete", func(t *testing.T) {
		env := newTestEnv()
		env.invitations.deleteErr = fmt.Errorf("invitations table on fire")
		env.notifier.deletedErr = fmt.Errorf("broker down")
		created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
		require.NoError(t, err)

		require.NoError(t, env.svc.DeleteEvent(ctx, created.ID, speaker))
		assert.Empty(t, env.events.byID)
	})
}

func TestGetEventByID_Visibility(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)

	_, err = env.svc.GetEventByID(ctx, created.ID, false)
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := env.svc.GetEventByID(ctx, created.ID, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetEvents_PublicSeesPublishedOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)
	_, err = env.svc.CreateEvent(ctx, validInput("venue-2"), admin)
	require.NoError(t, err)

	events, total, err := env.svc.GetEvents(ctx, domain.EventFilter{}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, domain.StatusPublished, events[0].Status)

	all, total, err := env.svc.GetEvents(ctx, domain.EventFilter{IncludePrivate: true}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestGetEventsBySpeaker(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.CreateEvent(ctx, validInput("venue-1"), speaker)
	require.NoError(t, err)

	public, err := env.svc.GetEventsBySpeaker(ctx, speaker.ID, false)
	require.NoError(t, err)
	assert.Empty(t, public)
	assert.NotNil(t, public)

	private, err := env.svc.GetEventsBySpeaker(ctx, speaker.ID, true)
	require.NoError(t, err)
	assert.Len(t, private, 1)
}

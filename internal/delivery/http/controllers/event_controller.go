package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps engine errors to stable API codes. Unrecognized
// errors are logged and reported as internal.
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var stateErr *domain.StateConflictError
	var venueErr *domain.VenueConflictError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed")
	case errors.As(err, &venueErr):
		helpers.WriteJSONErrorDetails(w, http.StatusConflict, helpers.ErrCodeVenueUnavailable, venueErr.Error(), map[string]any{
			"venue_id":             venueErr.VenueID,
			"requested_start":      venueErr.RequestedStart,
			"requested_end":        venueErr.RequestedEnd,
			"conflicting_event_id": venueErr.ConflictingEventID,
			"conflicting_start":    venueErr.ConflictingStart,
			"conflicting_end":      venueErr.ConflictingEnd,
		})
	case errors.Is(err, domain.ErrVenueUnavailable):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeVenueUnavailable, err.Error())
	case errors.As(err, &stateErr):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeStateConflict, stateErr.Error())
	case errors.Is(err, domain.ErrInvalidState):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeStateConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDeliveryFailure):
		// The status change is committed but the mandatory notification is
		// not confirmed; callers should re-query before retrying.
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeDeliveryFailure, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	BannerImage      string    `json:"banner_image"`
	VenueID          string    `json:"venue_id"`
	BookingStartDate time.Time `json:"booking_start_date"`
	BookingEndDate   time.Time `json:"booking_end_date"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.VenueID == "" {
		errs = append(errs, "venue_id is required")
	}
	if c.BookingStartDate.IsZero() {
		errs = append(errs, "booking_start_date is required")
	}
	if c.BookingEndDate.IsZero() {
		errs = append(errs, "booking_end_date is required")
	}
	return errs
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event at a venue. Admin-authored events are published immediately; everyone else gets a draft. The authenticated user becomes the owning speaker.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: venue_unavailable"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventInput{
		Name:             req.Name,
		Category:         req.Category,
		Description:      req.Description,
		BannerImage:      req.BannerImage,
		VenueID:          req.VenueID,
		BookingStartDate: req.BookingStartDate,
		BookingEndDate:   req.BookingEndDate,
	}, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name             *string    `json:"name"`
	Category         *string    `json:"category"`
	Description      *string    `json:"description"`
	BannerImage      *string    `json:"banner_image"`
	VenueID          *string    `json:"venue_id"`
	BookingStartDate *time.Time `json:"booking_start_date"`
	BookingEndDate   *time.Time `json:"booking_end_date"`
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Owners may edit draft and rejected events; admins may additionally edit published events, which re-checks availability and notifies downstream consumers.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: state_conflict or venue_unavailable"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, domain.EventPatch{
		Name:             req.Name,
		Category:         req.Category,
		Description:      req.Description,
		BannerImage:      req.BannerImage,
		VenueID:          req.VenueID,
		BookingStartDate: req.BookingStartDate,
		BookingEndDate:   req.BookingEndDate,
	}, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// SubmitEvent godoc
// @Summary Submit an event for approval
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event, now pending approval"
// @Failure 409 {object} helpers.APIResponse "error.code: state_conflict"
// @Router /events/{eventID}/submit [post]
func (c *EventController) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.SubmitEvent(r.Context(), eventID, actor)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ApproveEvent godoc
// @Summary Approve a pending event (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the published event"
// @Failure 409 {object} helpers.APIResponse "error.code: state_conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: delivery_failure"
// @Router /admin/events/{eventID}/approve [post]
func (c *EventController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.ApproveEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// RejectEventRequest is the request body for POST /admin/events/{eventID}/reject.
type RejectEventRequest struct {
	Reason string `json:"reason"`
}

// Validate implements Validator.
func (c RejectEventRequest) Validate() []string {
	if c.Reason == "" {
		return []string{"reason is required"}
	}
	return nil
}

// RejectEvent godoc
// @Summary Reject a pending event with a reason (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body RejectEventRequest true "Rejection reason"
// @Success 200 {object} helpers.APIResponse "data contains the rejected event"
// @Router /admin/events/{eventID}/reject [post]
func (c *EventController) RejectEvent(w http.ResponseWriter, r *http.Request) {
	var req RejectEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.RejectEvent(r.Context(), r.PathValue("eventID"), req.Reason)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CancelEvent godoc
// @Summary Cancel a published event (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the cancelled event"
// @Failure 502 {object} helpers.APIResponse "error.code: delivery_failure"
// @Router /admin/events/{eventID}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.CancelEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Owners may delete their own drafts; admins may delete any event.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("eventID"), actor); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Public callers see published events only; admins see everything.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	event, err := c.Service.GetEventByID(r.Context(), r.PathValue("eventID"), actor.Admin)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// EventListResponse is the response body for event listings.
type EventListResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEvents godoc
// @Summary List events
// @Description Supports filtering by status, category, venue, speaker, date range, free-text search, and a coarse temporal bucket (UPCOMING, ONGOING, PAST, ALL). Non-admin callers only see published events.
// @Tags events
// @Produce json
// @Param status query string false "Event status (admin only)"
// @Param category query string false "Category"
// @Param venue_id query string false "Venue ID"
// @Param speaker_id query string false "Speaker ID"
// @Param from query string false "Window start lower bound (RFC3339)"
// @Param to query string false "Window start upper bound (RFC3339)"
// @Param search query string false "Free-text search over name and description"
// @Param time_frame query string false "UPCOMING, ONGOING, PAST or ALL"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	q := r.URL.Query()

	filter := domain.EventFilter{
		Category:       q.Get("category"),
		VenueID:        q.Get("venue_id"),
		SpeakerID:      q.Get("speaker_id"),
		Search:         q.Get("search"),
		TimeFrame:      domain.TimeFrame(q.Get("time_frame")),
		IncludePrivate: actor.Admin,
	}
	if s := q.Get("status"); s != "" {
		status := domain.EventStatus(s)
		if !status.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown status")
			return
		}
		filter.Status = &status
	}
	for param, dest := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		if s := q.Get(param); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, param+" must be RFC3339")
				return
			}
			*dest = &t
		}
	}

	params := helpers.ParsePagination(r)
	events, total, err := c.Service.GetEvents(r.Context(), filter, params)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListEventsBySpeaker godoc
// @Summary List a speaker's events
// @Description The speaker themselves (and admins) see all statuses; everyone else sees published events only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Success 200 {object} helpers.APIResponse "data contains the speaker's events"
// @Router /speakers/{speakerID}/events [get]
func (c *EventController) ListEventsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID := r.PathValue("speakerID")
	actor, _ := middleware.ActorFromContext(r.Context())
	includePrivate := actor.Admin || actor.ID == speakerID
	events, err := c.Service.GetEventsBySpeaker(r.Context(), speakerID, includePrivate)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

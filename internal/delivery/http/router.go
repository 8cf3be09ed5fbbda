package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(eventController *controllers.EventController,
	venueController *controllers.VenueController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := middleware.RequireAdmin(verifier)
	optional := middleware.OptionalAuth(verifier)

	// Public reads
	mux.HandleFunc("GET /events", optional(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", optional(eventController.GetEvent))
	mux.HandleFunc("GET /venues", venueController.ListVenues)
	mux.HandleFunc("GET /venues/{venueID}", venueController.GetVenue)

	// Speaker operations
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("POST /events/{eventID}/submit", auth(eventController.SubmitEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("GET /speakers/{speakerID}/events", auth(eventController.ListEventsBySpeaker))

	// Admin operations
	mux.HandleFunc("POST /admin/events/{eventID}/approve", admin(eventController.ApproveEvent))
	mux.HandleFunc("POST /admin/events/{eventID}/reject", admin(eventController.RejectEvent))
	mux.HandleFunc("POST /admin/events/{eventID}/cancel", admin(eventController.CancelEvent))
	mux.HandleFunc("PATCH /admin/events/{eventID}", admin(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /admin/events/{eventID}", admin(eventController.DeleteEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

package domain

import (
	"context"
	"time"
)

// Venue represents a bookable location. Venues are managed by the venue
// directory; this service reads them but never mutates them.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	OpensAt   string    `json:"opens_at"`
	ClosesAt  string    `json:"closes_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VenueRepository defines read access to venue records.
type VenueRepository interface {
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
}

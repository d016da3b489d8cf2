// Package trips stores trip seeds: a listing URL plus the location and dates
// a teaser itinerary is planned for.
package trips

import (
	"errors"
	"time"
)

// Status tracks where a seed is in the planning workflow.
type Status string

const (
	StatusSeedCreated        Status = "seed_created"
	StatusTeaserGenerated    Status = "teaser_generated"
	StatusItineraryGenerated Status = "itinerary_generated"
)

// DateLayout is the format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// ErrNotFound is returned when no seed has the requested ID.
var ErrNotFound = errors.New("trip seed not found")

// Seed is a stored trip.
type Seed struct {
	ID                string                 `json:"id"`
	URL               string                 `json:"url"`
	Summary           string                 `json:"summary,omitempty"`
	Location          string                 `json:"location"`
	CheckIn           string                 `json:"checkIn"`
	CheckOut          string                 `json:"checkOut"`
	AccommodationName string                 `json:"accommodationName,omitempty"`
	AccommodationType string                 `json:"accommodationType,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	Status            Status                 `json:"status"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// CreateRequest is the body of a seed creation.
type CreateRequest struct {
	URL               string                 `json:"url" validate:"required,url"`
	Summary           string                 `json:"summary"`
	Location          string                 `json:"location" validate:"required"`
	CheckIn           string                 `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut          string                 `json:"checkOut" validate:"required,datetime=2006-01-02"`
	AccommodationName string                 `json:"accommodationName"`
	AccommodationType string                 `json:"accommodationType" validate:"omitempty,oneof=airbnb hotel hostel resort other"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Summary           *string                `json:"summary"`
	Location          *string                `json:"location" validate:"omitempty,min=1"`
	AccommodationName *string                `json:"accommodationName"`
	AccommodationType *string                `json:"accommodationType" validate:"omitempty,oneof=airbnb hotel hostel resort other"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// apply copies the set fields of r onto s.
func (r UpdateRequest) apply(s *Seed) {
	if r.Summary != nil {
		s.Summary = *r.Summary
	}
	if r.Location != nil {
		s.Location = *r.Location
	}
	if r.AccommodationName != nil {
		s.AccommodationName = *r.AccommodationName
	}
	if r.AccommodationType != nil {
		s.AccommodationType = *r.AccommodationType
	}
	if r.Metadata != nil {
		s.Metadata = r.Metadata
	}
}

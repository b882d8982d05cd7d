package venue

import (
	"context"

	"venuebook/models"
)

// CreateVenueInput is the payload for registering a new venue.
type CreateVenueInput struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Timezone    string                `json:"timezone" binding:"required"`
	Settings    *models.VenueSettings `json:"settings"`
}

// UpdateVenueInput carries a partial venue update; nil fields are left
// untouched.
type UpdateVenueInput struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Timezone    *string               `json:"timezone"`
	Settings    *models.VenueSettings `json:"settings"`
}

// TimeSlotInput is the payload for creating a weekly template slot.
type TimeSlotInput struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable *bool  `json:"is_available"`
	MaxCapacity int    `json:"max_capacity"`
}

// TimeSlotUpdate carries a partial template-slot update.
type TimeSlotUpdate struct {
	DayOfWeek   *int    `json:"day_of_week"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsAvailable *bool   `json:"is_available"`
	MaxCapacity *int    `json:"max_capacity"`
}

// VenueService manages venues and their weekly template slots.
type VenueService interface {
	CreateVenue(ctx context.Context, input CreateVenueInput) (*models.Venue, error)
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	UpdateVenue(ctx context.Context, id string, input UpdateVenueInput) (*models.Venue, error)
	DeactivateVenue(ctx context.Context, id string) error

	CreateTimeSlot(ctx context.Context, venueID string, input TimeSlotInput) (*models.TimeSlot, error)
	ListTimeSlots(ctx context.Context, venueID string) ([]models.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, slotID string, input TimeSlotUpdate) (*models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, slotID string) error
}

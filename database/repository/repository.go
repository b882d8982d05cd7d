// Package repository defines the persistence contracts for venues, weekly
// template slots, and bookings. Two implementations exist: the embedded
// SQLite store (package sqlite) and an in-memory snapshot store (package
// memory) mirroring the widget's browser-storage fallback. The availability
// resolver never queries storage itself; these repositories fetch and shape
// rows into its input types.
package repository

import (
	"context"
	"errors"
	"time"

	"venuebook/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateBooking is returned when a non-cancelled booking already
// occupies the same venue and start instant.
var ErrDuplicateBooking = errors.New("a booking already exists for this time")

// VenueRepository manages venue rows. Venues are soft-deleted only.
type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id string) (*models.Venue, error)
	// List returns active venues ordered by name.
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Deactivate(ctx context.Context, id string) error
}

// TimeSlotRepository manages weekly template rows.
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *models.TimeSlot) error
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	// ListByVenue returns all template rows for a venue ordered by day of
	// week then start time, including unavailable ones.
	ListByVenue(ctx context.Context, venueID string) ([]models.TimeSlot, error)
	Update(ctx context.Context, slot *models.TimeSlot) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository manages booking rows.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListForDay returns bookings whose start falls in [dayStart, dayEnd),
	// ordered by start time ascending. This feeds the availability
	// resolver.
	ListForDay(ctx context.Context, venueID string, dayStart, dayEnd time.Time) ([]models.Booking, error)
	// ListForRange returns bookings ordered by start time descending,
	// optionally bounded by start (inclusive) and end (inclusive).
	ListForRange(ctx context.Context, venueID string, start, end *time.Time) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status, adminNotes string) error
	// CountActiveByEmail counts a customer's non-cancelled future bookings
	// at a venue, for the per-customer cap.
	CountActiveByEmail(ctx context.Context, venueID, email string, now time.Time) (int, error)
	Stats(ctx context.Context, venueID string, now time.Time) (*models.BookingStats, error)
}

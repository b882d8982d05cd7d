package models

import "time"

// VenueSettings controls how bookings against a venue behave.
type VenueSettings struct {
	BookingDurationMinutes int `json:"booking_duration_minutes"`
	AdvanceBookingDays     int `json:"advance_booking_days"`
	CancellationMinutes    int `json:"cancellation_minutes"`
	// MaxBookingsPerUser caps active bookings per customer email.
	// Zero means no cap.
	MaxBookingsPerUser int `json:"max_bookings_per_user,omitempty"`
}

// Venue is a bookable resource (a court, a room, a chair). Venues own their
// weekly template slots and bookings. Venues are never hard-deleted; the
// delete path flips IsActive off.
type Venue struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Timezone    string        `json:"timezone"` // IANA identifier, e.g. "America/New_York"
	Settings    VenueSettings `json:"settings"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DefaultVenueSettings returns the settings applied when a venue is created
// without an explicit settings payload.
func DefaultVenueSettings() VenueSettings {
	return VenueSettings{
		BookingDurationMinutes: 60,
		AdvanceBookingDays:     14,
		CancellationMinutes:    120,
		MaxBookingsPerUser:     2,
	}
}

package models

import "time"

// Booking status values. The operator update path may move a booking from
// any status to any other; there is no enforced transition graph.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// ValidBookingStatus reports whether s is one of the three known statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a concrete reservation against a venue. Start and end are
// absolute instants, not local wall-clock values. Everything except the
// status and admin notes is immutable after creation.
type Booking struct {
	ID            string    `json:"id"`
	VenueID       string    `json:"venue_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	AdminNotes    string    `json:"admin_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookingStats is the aggregate view shown on the admin dashboard.
type BookingStats struct {
	Total         int `json:"total"`
	Pending       int `json:"pending"`
	Confirmed     int `json:"confirmed"`
	Cancelled     int `json:"cancelled"`
	TodayBookings int `json:"today_bookings"`
	WeekBookings  int `json:"week_bookings"`
}

// ReminderPayload is the asynq task body for booking reminders.
type ReminderPayload struct {
	BookingID     string `json:"bookingId"`
	VenueID       string `json:"venueId"`
	CustomerEmail string `json:"customerEmail"`
	StartTime     string `json:"startTime"` // RFC 3339
}

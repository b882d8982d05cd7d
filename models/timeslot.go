package models

import "time"

// TimeSlot is a recurring weekly availability rule for a venue: a day of
// week plus a local wall-clock range. It is a pattern, not a concrete
// occurrence; concrete windows are derived per date by the availability
// resolver.
type TimeSlot struct {
	ID      string `json:"id"`
	VenueID string `json:"venue_id"`
	// DayOfWeek uses the Sunday=0..Saturday=6 convention, which matches
	// time.Weekday directly.
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // "HH:MM" or "HH:MM:SS"
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	MaxCapacity int       `json:"max_capacity"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResolvedSlot is a concrete date-bound window derived from a TimeSlot,
// annotated with live availability against existing bookings. Resolved
// slots are computed fresh on every call and never persisted.
type ResolvedSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

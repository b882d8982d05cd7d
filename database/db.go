package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store owns the embedded SQLite database. It is constructed once in main
// and passed to the repositories explicitly; there is no package-level
// handle.
type Store struct {
	DB *sql.DB
}

// Open creates or opens the database file under dataDir, ensures the
// schema, and optionally seeds demo data.
func Open(dataDir string, seedDemo bool) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, "bookings.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_loc=UTC")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	// SQLite allows a single writer; keep the pool at one connection so
	// concurrent handlers queue instead of hitting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := &Store{DB: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if seedDemo {
		if err := store.SeedDemoData(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return store, nil
}

var memDBSeq atomic.Int64

// OpenInMemory opens a private in-memory database. Used by tests. Each call
// gets its own database; cache=shared only spans the connection pool.
func OpenInMemory() (*Store, error) {
	name := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_foreign_keys=on&_loc=UTC", memDBSeq.Add(1))
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)
	store := &Store{DB: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			timezone TEXT NOT NULL DEFAULT 'UTC',
			settings TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_slots (
			id TEXT PRIMARY KEY,
			venue_id TEXT NOT NULL,
			day_of_week INTEGER NOT NULL CHECK (day_of_week >= 0 AND day_of_week <= 6),
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			is_available INTEGER NOT NULL DEFAULT 1,
			max_capacity INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (venue_id) REFERENCES venues(id),
			UNIQUE (venue_id, day_of_week, start_time)
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			venue_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			customer_phone TEXT,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled')),
			notes TEXT,
			admin_notes TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			FOREIGN KEY (venue_id) REFERENCES venues(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_venue_date ON bookings(venue_id, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_time_slots_venue_day ON time_slots(venue_id, day_of_week)`,
		// Closes the check-then-act window between resolving availability
		// and persisting a booking: two racing creates for the same
		// instant cannot both commit.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_unique_start
			ON bookings(venue_id, start_time) WHERE status != 'cancelled'`,
	}

	for _, stmt := range statements {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("schema setup failed: %w", err)
		}
	}
	return nil
}

// SeedDemoData inserts the demo tennis-court venue with weekday 9-18 and
// weekend 8-20 hourly template slots. Idempotent.
func (s *Store) SeedDemoData() error {
	var existing string
	err := s.DB.QueryRow(`SELECT id FROM venues WHERE id = 'demo-tennis-court'`).Scan(&existing)
	if err == nil {
		return nil // already seeded
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("demo seed check failed: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.DB.Exec(`
		INSERT INTO venues (id, name, description, timezone, settings, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		"demo-tennis-court",
		"Community Tennis Court",
		"Local tennis court available for booking",
		"America/New_York",
		`{"booking_duration_minutes":60,"advance_booking_days":14,"cancellation_minutes":120,"max_bookings_per_user":2}`,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("demo venue seed failed: %w", err)
	}

	insertSlot := func(day, hour int) error {
		_, err := s.DB.Exec(`
			INSERT INTO time_slots (id, venue_id, day_of_week, start_time, end_time, is_available, max_capacity, created_at)
			VALUES (?, 'demo-tennis-court', ?, ?, ?, 1, 1, ?)`,
			fmt.Sprintf("slot-%d-%d", day, hour),
			day,
			fmt.Sprintf("%02d:00:00", hour),
			fmt.Sprintf("%02d:00:00", hour+1),
			now,
		)
		return err
	}

	// Monday to Friday, 9 AM to 6 PM.
	for day := 1; day <= 5; day++ {
		for hour := 9; hour < 18; hour++ {
			if err := insertSlot(day, hour); err != nil {
				return fmt.Errorf("demo slot seed failed: %w", err)
			}
		}
	}
	// Saturday and Sunday, 8 AM to 8 PM.
	for _, day := range []int{0, 6} {
		for hour := 8; hour < 20; hour++ {
			if err := insertSlot(day, hour); err != nil {
				return fmt.Errorf("demo slot seed failed: %w", err)
			}
		}
	}
	return nil
}

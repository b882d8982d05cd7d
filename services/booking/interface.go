package booking

import (
	"context"
	"io"
	"time"

	"venuebook/models"
)

// CreateBookingInput is the customer-facing booking payload. StartTime and
// EndTime are absolute instants.
type CreateBookingInput struct {
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required"`
	CustomerPhone string    `json:"customer_phone"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

// UpdateStatusInput is the operator's booking update payload.
type UpdateStatusInput struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"admin_notes"`
}

// BookingService manages the booking lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, venueID string, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, venueID string, start, end *time.Time) ([]models.Booking, error)
	// UpdateStatus applies an operator status change. Any status may move
	// to any other status.
	UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) (*models.Booking, error)
	// CancelBooking cancels on behalf of a customer, enforcing the
	// venue's cancellation cutoff unless force is set (operator path).
	CancelBooking(ctx context.Context, id string, force bool) error
	Stats(ctx context.Context, venueID string) (*models.BookingStats, error)
	ExportCSV(ctx context.Context, venueID string, w io.Writer) error
}

// ReminderScheduler enqueues booking reminders for later delivery. The
// asynq-backed implementation lives in the cron package.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, processAt time.Time) error
}

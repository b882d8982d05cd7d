package booking

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// csvHeader matches the admin console's download format, column for column.
var csvHeader = []string{
	"Booking ID", "Customer Name", "Customer Email", "Customer Phone",
	"Start Time", "End Time", "Status", "Notes", "Created At", "Updated At",
}

// ExportCSV streams all of a venue's bookings as CSV, newest first.
func (s *DefaultBookingService) ExportCSV(ctx context.Context, venueID string, w io.Writer) error {
	bookings, err := s.ListBookings(ctx, venueID, nil, nil)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, b := range bookings {
		record := []string{
			b.ID,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.StartTime.UTC().Format(time.RFC3339),
			b.EndTime.UTC().Format(time.RFC3339),
			b.Status,
			b.Notes,
			b.CreatedAt.UTC().Format(time.RFC3339),
			b.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

package booking

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrVenueNotFound is returned when the target venue does not exist
	// or has been deactivated.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrInvalidInput wraps validation failures on the booking payload.
	ErrInvalidInput = errors.New("invalid booking input")
	// ErrSlotTaken is returned when another non-cancelled booking already
	// occupies the requested start instant.
	ErrSlotTaken = errors.New("the requested time is no longer available")
	// ErrBookingCapReached is returned when the venue's per-customer
	// booking cap would be exceeded.
	ErrBookingCapReached = errors.New("booking limit reached for this customer")
	// ErrCancellationWindowClosed is returned when a customer cancels
	// inside the venue's cancellation cutoff.
	ErrCancellationWindowClosed = errors.New("the cancellation window for this booking has closed")
)

package venue

import "errors"

var (
	// ErrVenueNotFound is returned when the venue does not exist or has
	// been deactivated.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrSlotNotFound is returned when the template slot does not exist.
	ErrSlotNotFound = errors.New("time slot not found")
	// ErrInvalidInput wraps validation failures on create/update payloads.
	ErrInvalidInput = errors.New("invalid input")
)

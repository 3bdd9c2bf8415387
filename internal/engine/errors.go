package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidClock is returned when a wall-clock string cannot be parsed
// or does not land on a whole minute.
var ErrInvalidClock = errors.New("invalid clock time, expected HH:MM")

// ConfigurationError marks operator-facing data problems: a slot width that
// does not divide the day, contradictory price rules, an unpriced range.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ConflictError is the expected outcome when a requested range overlaps an
// active booking. It carries the id of (one of) the colliding booking(s).
type ConflictError struct {
	BookingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time range already booked by %s", e.BookingID)
}

// InvalidTransitionError is returned on state machine misuse.
type InvalidTransitionError struct {
	Current BookingStatus
	Target  BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.Current, e.Target)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

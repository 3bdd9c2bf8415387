package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrSelfOverlap is returned when the ranges of a single booking request
// overlap each other on the same sub-court.
var ErrSelfOverlap = errors.New("requested ranges overlap each other")

// TimeRange is one requested (sub-court, time window) pair of a booking.
type TimeRange struct {
	SubCourtID  uuid.UUID
	StartMinute int
	EndMinute   int
}

// ActiveItem is an existing booking-item that currently occupies its slots.
type ActiveItem struct {
	BookingID   uuid.UUID
	SubCourtID  uuid.UUID
	StartMinute int
	EndMinute   int
}

// Overlaps reports whether half-open intervals [s1,e1) and [s2,e2) collide.
// A range ending exactly when another starts does not conflict.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// CheckRanges decides whether the requested ranges may be booked.
//
// Every range must be well-formed, must not overlap another range of the
// same request on the same sub-court, and must not overlap any existing
// active item. On an external collision the returned ConflictError carries
// the colliding booking id so the caller can surface "already booked".
func CheckRanges(existing []ActiveItem, requested []TimeRange) error {
	for i, r := range requested {
		if r.StartMinute >= r.EndMinute || r.StartMinute < 0 || r.EndMinute > DayMinutes {
			return fmt.Errorf("%w: range %s-%s", ErrInvalidClock,
				FormatMinutes(r.StartMinute), FormatMinutes(r.EndMinute))
		}

		for _, prev := range requested[:i] {
			if prev.SubCourtID == r.SubCourtID &&
				Overlaps(prev.StartMinute, prev.EndMinute, r.StartMinute, r.EndMinute) {
				return fmt.Errorf("%w: %s-%s and %s-%s on sub-court %s", ErrSelfOverlap,
					FormatMinutes(prev.StartMinute), FormatMinutes(prev.EndMinute),
					FormatMinutes(r.StartMinute), FormatMinutes(r.EndMinute), r.SubCourtID)
			}
		}

		for _, item := range existing {
			if item.SubCourtID == r.SubCourtID &&
				Overlaps(item.StartMinute, item.EndMinute, r.StartMinute, r.EndMinute) {
				return &ConflictError{BookingID: item.BookingID}
			}
		}
	}

	return nil
}

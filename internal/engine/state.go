package engine

import "time"

type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusRejected    BookingStatus = "rejected"
	StatusCancelled   BookingStatus = "cancelled"
	StatusExpired     BookingStatus = "expired"
	StatusLocked      BookingStatus = "locked"
	StatusOutOfSystem BookingStatus = "out_of_system"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled,
		StatusExpired, StatusLocked, StatusOutOfSystem:
		return true
	}
	return false
}

// IsExpired is the single expiry predicate used by every component that
// inspects booking status. Only a pending booking can expire.
func IsExpired(status BookingStatus, expiredAt, now time.Time) bool {
	return status == StatusPending && !now.Before(expiredAt)
}

// EffectiveStatus folds lazy expiry into the stored status: a pending
// booking past its deadline is observably expired even before any writer
// has persisted the transition.
func EffectiveStatus(status BookingStatus, expiredAt, now time.Time) BookingStatus {
	if IsExpired(status, expiredAt, now) {
		return StatusExpired
	}
	return status
}

// Occupies reports whether a booking in this state holds its slots.
// Rejected, cancelled and expired bookings release their slots; locked and
// out_of_system blocks keep occupying them.
func Occupies(status BookingStatus, expiredAt, now time.Time) bool {
	switch EffectiveStatus(status, expiredAt, now) {
	case StatusRejected, StatusCancelled, StatusExpired:
		return false
	}
	return true
}

// Transition applies the booking state machine against the stored status
// and expiry deadline. It returns the resulting status or an
// InvalidTransitionError naming the (effective) current and requested state.
//
// Transitioning an already-expired booking to expired is a no-op, so
// concurrent lazy-expiry attempts stay idempotent.
func Transition(status BookingStatus, expiredAt time.Time, target BookingStatus, now time.Time) (BookingStatus, error) {
	current := EffectiveStatus(status, expiredAt, now)

	if !ValidStatus(target) {
		return current, &InvalidTransitionError{Current: current, Target: target}
	}

	switch target {
	case StatusLocked, StatusOutOfSystem:
		// Administrative overrides apply from any state.
		return target, nil

	case StatusExpired:
		if current == StatusExpired {
			return StatusExpired, nil
		}

	case StatusConfirmed:
		if current == StatusPending {
			return StatusConfirmed, nil
		}

	case StatusRejected:
		if current == StatusPending || current == StatusConfirmed {
			return StatusRejected, nil
		}

	case StatusCancelled:
		if current == StatusPending || current == StatusConfirmed {
			return StatusCancelled, nil
		}
	}

	return current, &InvalidTransitionError{Current: current, Target: target}
}

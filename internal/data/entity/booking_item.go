package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingItem is the portion of a booking covering one sub-court and one
// contiguous, slot-aligned time range on one date. Active mirrors whether
// the owning booking still occupies its slots; it backs the overlap
// exclusion constraint.
type BookingItem struct {
	BaseSimple
	BookingID   uuid.UUID `db:"booking_id"`
	SubCourtID  uuid.UUID `db:"sub_court_id"`
	PlayDate    time.Time `db:"play_date"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
	Price       float64   `db:"price"`
	Active      bool      `db:"active"`
}

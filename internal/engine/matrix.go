package engine

import (
	"time"

	"github.com/google/uuid"
)

// Item is a booking-item projected for occupancy checks. Date handling is
// the caller's concern: all items passed in belong to one sub-court and day.
type Item struct {
	BookingID   uuid.UUID
	SubCourtID  uuid.UUID
	StartMinute int
	EndMinute   int
	Price       float64
}

// BookingRef carries the status data needed to decide whether an item's
// booking still occupies its slots.
type BookingRef struct {
	ID        uuid.UUID
	Status    BookingStatus
	ExpiredAt time.Time
}

// AvailabilitySlot is the per-slot read-only projection of occupancy and
// price. It is recomputed on every query and never persisted.
//
// BookingIDs normally holds zero or one entry. More than one means two
// active items cover the same slot, which the conflict detector should have
// made impossible; the builder surfaces every colliding id rather than
// silently picking one.
type AvailabilitySlot struct {
	Slot
	BookingIDs []uuid.UUID
	Status     *BookingStatus
	Price      *float64
	PriceRule  *uuid.UUID
}

// Occupied reports whether the slot is covered by an active booking-item.
func (s AvailabilitySlot) Occupied() bool {
	return len(s.BookingIDs) > 0
}

// BuildMatrix intersects the slot grid, the sub-court's booking-items and
// the price schedule into one per-slot view for a single sub-court and day.
//
// An item occupies a slot when its window contains the slot window and its
// booking is active at now (lazy expiry folded in through Occupies). The
// resolved price is attached regardless of occupancy.
func BuildMatrix(grid []Slot, items []Item, bookings map[uuid.UUID]BookingRef, rules []PriceRule, dayOfWeek int, now time.Time, onRuleConflict RuleConflictFunc) []AvailabilitySlot {
	matrix := make([]AvailabilitySlot, len(grid))

	for i, slot := range grid {
		as := AvailabilitySlot{Slot: slot}

		for _, item := range items {
			if !(item.StartMinute <= slot.StartMinute && slot.EndMinute <= item.EndMinute) {
				continue
			}
			ref, ok := bookings[item.BookingID]
			if !ok || !Occupies(ref.Status, ref.ExpiredAt, now) {
				continue
			}

			as.BookingIDs = append(as.BookingIDs, item.BookingID)
			if as.Status == nil {
				status := EffectiveStatus(ref.Status, ref.ExpiredAt, now)
				as.Status = &status
			}
		}

		if rule := ResolvePrice(dayOfWeek, slot, rules, onRuleConflict); rule != nil {
			price := rule.PricePerHour
			as.Price = &price
			id := rule.ID
			as.PriceRule = &id
		}

		matrix[i] = as
	}

	return matrix
}

// Occupancy is the comparable per-slot value used to merge an availability
// matrix into compact display ranges.
type Occupancy struct {
	BookingID uuid.UUID
	Status    BookingStatus
	Price     float64
}

// MergeOccupancy compacts the occupied slots of a matrix into contiguous
// ranges sharing the same booking, status and price. Free slots are gaps.
func MergeOccupancy(matrix []AvailabilitySlot) []MergedRange[Occupancy] {
	values := make([]*Occupancy, len(matrix))
	for i, s := range matrix {
		if !s.Occupied() {
			continue
		}
		occ := Occupancy{BookingID: s.BookingIDs[0], Status: *s.Status}
		if s.Price != nil {
			occ.Price = *s.Price
		}
		values[i] = &occ
	}
	return Merge(values)
}

package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustGrid(t *testing.T, width int) []Slot {
	t.Helper()
	grid, err := GenerateSlots(width)
	if err != nil {
		t.Fatalf("GenerateSlots(%d): %v", width, err)
	}
	return grid
}

func TestBuildMatrix_ConfirmedBookingOccupiesExactSlots(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	grid := mustGrid(t, 30)
	court := uuid.New()
	bookingID := uuid.New()

	items := []Item{
		{BookingID: bookingID, SubCourtID: court, StartMinute: 600, EndMinute: 660, Price: 100000}, // 10:00-11:00
	}
	bookings := map[uuid.UUID]BookingRef{
		bookingID: {ID: bookingID, Status: StatusConfirmed, ExpiredAt: now.Add(-time.Hour)},
	}

	matrix := BuildMatrix(grid, items, bookings, nil, 4, now, nil)
	if len(matrix) != 48 {
		t.Fatalf("expected 48 slots, got %d", len(matrix))
	}

	occupied := 0
	for _, s := range matrix {
		if !s.Occupied() {
			continue
		}
		occupied++
		if s.Index != 20 && s.Index != 21 {
			t.Fatalf("unexpected occupied slot %d (%s-%s)", s.Index,
				FormatMinutes(s.StartMinute), FormatMinutes(s.EndMinute))
		}
		if len(s.BookingIDs) != 1 || s.BookingIDs[0] != bookingID {
			t.Fatalf("slot %d carries booking ids %v, want [%s]", s.Index, s.BookingIDs, bookingID)
		}
		if s.Status == nil || *s.Status != StatusConfirmed {
			t.Fatalf("slot %d status %v, want confirmed", s.Index, s.Status)
		}
	}
	if occupied != 2 {
		t.Fatalf("expected exactly 2 occupied slots, got %d", occupied)
	}
}

func TestBuildMatrix_ExpiredPendingReleasesSlots(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	grid := mustGrid(t, 30)
	court := uuid.New()
	bookingID := uuid.New()

	items := []Item{
		{BookingID: bookingID, SubCourtID: court, StartMinute: 480, EndMinute: 540},
	}
	bookings := map[uuid.UUID]BookingRef{
		bookingID: {ID: bookingID, Status: StatusPending, ExpiredAt: now.Add(-time.Minute)},
	}

	matrix := BuildMatrix(grid, items, bookings, nil, 4, now, nil)
	for _, s := range matrix {
		if s.Occupied() {
			t.Fatalf("slot %d should be free: pending booking past its deadline releases its slots", s.Index)
		}
	}

	// The same booking before its deadline does occupy.
	bookings[bookingID] = BookingRef{ID: bookingID, Status: StatusPending, ExpiredAt: now.Add(time.Minute)}
	matrix = BuildMatrix(grid, items, bookings, nil, 4, now, nil)
	if !matrix[16].Occupied() || !matrix[17].Occupied() {
		t.Fatal("live pending booking must occupy its slots")
	}
}

func TestBuildMatrix_LockedAndOutOfSystemOccupy(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	grid := mustGrid(t, 30)
	court := uuid.New()

	for _, status := range []BookingStatus{StatusLocked, StatusOutOfSystem} {
		id := uuid.New()
		items := []Item{{BookingID: id, SubCourtID: court, StartMinute: 0, EndMinute: 30}}
		bookings := map[uuid.UUID]BookingRef{id: {ID: id, Status: status, ExpiredAt: now.Add(-time.Hour)}}

		matrix := BuildMatrix(grid, items, bookings, nil, 4, now, nil)
		if !matrix[0].Occupied() {
			t.Fatalf("%s booking must occupy its slots", status)
		}
		if *matrix[0].Status != status {
			t.Fatalf("slot status %s, want %s", *matrix[0].Status, status)
		}
	}
}

func TestBuildMatrix_AttachesPriceRegardlessOfOccupancy(t *testing.T) {
	now := time.Date(2026, 1, 12, 7, 0, 0, 0, time.UTC) // a Monday
	grid := mustGrid(t, 30)
	ruleID := uuid.New()
	rules := []PriceRule{
		{ID: ruleID, DayOfWeek: dptr(1), StartMinute: 480, EndMinute: 840, PricePerHour: 100000},
		{ID: uuid.New(), DayOfWeek: nil, StartMinute: 0, EndMinute: DayMinutes, PricePerHour: 50000},
	}

	matrix := BuildMatrix(grid, nil, nil, rules, 1, now, nil)

	nine := matrix[18] // 09:00-09:30
	if nine.Price == nil || *nine.Price != 100000 {
		t.Fatalf("Monday 09:00 price = %v, want 100000", nine.Price)
	}
	if nine.PriceRule == nil || *nine.PriceRule != ruleID {
		t.Fatalf("Monday 09:00 should carry the day-specific rule id")
	}

	night := matrix[4] // 02:00-02:30, only wildcard applies
	if night.Price == nil || *night.Price != 50000 {
		t.Fatalf("02:00 price = %v, want wildcard 50000", night.Price)
	}
}

func TestBuildMatrix_SurfacesCollidingBookings(t *testing.T) {
	// Two active items covering one slot indicate a conflict-detection bug
	// upstream; the builder must surface all ids, not pick one silently.
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	grid := mustGrid(t, 30)
	court := uuid.New()
	first, second := uuid.New(), uuid.New()

	items := []Item{
		{BookingID: first, SubCourtID: court, StartMinute: 600, EndMinute: 660},
		{BookingID: second, SubCourtID: court, StartMinute: 630, EndMinute: 690},
	}
	bookings := map[uuid.UUID]BookingRef{
		first:  {ID: first, Status: StatusConfirmed},
		second: {ID: second, Status: StatusConfirmed},
	}

	matrix := BuildMatrix(grid, items, bookings, nil, 4, now, nil)
	if got := len(matrix[21].BookingIDs); got != 2 { // 10:30-11:00
		t.Fatalf("double-covered slot must surface both booking ids, got %d", got)
	}
	if len(matrix[20].BookingIDs) != 1 || len(matrix[22].BookingIDs) != 1 {
		t.Fatal("singly covered slots must carry exactly one booking id")
	}
}

func TestMergeOccupancy(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	grid := mustGrid(t, 30)
	court := uuid.New()
	bookingID := uuid.New()

	items := []Item{
		{BookingID: bookingID, SubCourtID: court, StartMinute: 600, EndMinute: 690},
	}
	bookings := map[uuid.UUID]BookingRef{
		bookingID: {ID: bookingID, Status: StatusConfirmed},
	}

	ranges := MergeOccupancy(BuildMatrix(grid, items, bookings, nil, 4, now, nil))
	if len(ranges) != 1 {
		t.Fatalf("expected 1 merged range, got %d", len(ranges))
	}
	if ranges[0].StartIndex != 20 || ranges[0].EndIndex != 23 {
		t.Fatalf("merged range covers slots %d-%d, want 20-23", ranges[0].StartIndex, ranges[0].EndIndex)
	}
	if ranges[0].Value.BookingID != bookingID || ranges[0].Value.Status != StatusConfirmed {
		t.Fatalf("merged range value %+v mismatch", ranges[0].Value)
	}
}

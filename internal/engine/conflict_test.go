package engine

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCheckRanges_AdjacentNeverConflicts(t *testing.T) {
	court := uuid.New()
	existing := []ActiveItem{
		{BookingID: uuid.New(), SubCourtID: court, StartMinute: 540, EndMinute: 600}, // 09:00-10:00
	}

	// 08:00-09:00 ends exactly when the existing booking starts.
	err := CheckRanges(existing, []TimeRange{{SubCourtID: court, StartMinute: 480, EndMinute: 540}})
	if err != nil {
		t.Fatalf("adjacent ranges must not conflict: %v", err)
	}
}

func TestCheckRanges_OverlapReportsBookingID(t *testing.T) {
	court := uuid.New()
	winner := uuid.New()
	existing := []ActiveItem{
		{BookingID: winner, SubCourtID: court, StartMinute: 480, EndMinute: 540},
	}

	err := CheckRanges(existing, []TimeRange{{SubCourtID: court, StartMinute: 510, EndMinute: 570}})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.BookingID != winner {
		t.Fatalf("conflict reported booking %s, want %s", conflict.BookingID, winner)
	}
}

func TestCheckRanges_OtherSubCourtDoesNotConflict(t *testing.T) {
	existing := []ActiveItem{
		{BookingID: uuid.New(), SubCourtID: uuid.New(), StartMinute: 480, EndMinute: 540},
	}

	err := CheckRanges(existing, []TimeRange{{SubCourtID: uuid.New(), StartMinute: 480, EndMinute: 540}})
	if err != nil {
		t.Fatalf("same time on a different sub-court must not conflict: %v", err)
	}
}

func TestCheckRanges_SelfOverlap(t *testing.T) {
	court := uuid.New()
	err := CheckRanges(nil, []TimeRange{
		{SubCourtID: court, StartMinute: 480, EndMinute: 600},
		{SubCourtID: court, StartMinute: 570, EndMinute: 660},
	})
	if !errors.Is(err, ErrSelfOverlap) {
		t.Fatalf("expected ErrSelfOverlap, got %v", err)
	}

	// The same windows on two different sub-courts are a valid multi-court request.
	err = CheckRanges(nil, []TimeRange{
		{SubCourtID: court, StartMinute: 480, EndMinute: 600},
		{SubCourtID: uuid.New(), StartMinute: 480, EndMinute: 600},
	})
	if err != nil {
		t.Fatalf("multi-court request must pass: %v", err)
	}
}

func TestCheckRanges_RejectsMalformedRange(t *testing.T) {
	court := uuid.New()
	for _, r := range []TimeRange{
		{SubCourtID: court, StartMinute: 600, EndMinute: 600},
		{SubCourtID: court, StartMinute: 660, EndMinute: 600},
		{SubCourtID: court, StartMinute: -30, EndMinute: 60},
		{SubCourtID: court, StartMinute: 1410, EndMinute: 1470},
	} {
		if err := CheckRanges(nil, []TimeRange{r}); err == nil {
			t.Fatalf("range %d-%d should be rejected", r.StartMinute, r.EndMinute)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		s1, e1, s2, e2 int
		want           bool
	}{
		{480, 540, 540, 600, false}, // touching
		{480, 540, 530, 600, true},  // partial
		{480, 600, 500, 520, true},  // contained
		{480, 540, 600, 660, false}, // disjoint
		{480, 540, 480, 540, true},  // identical
	}
	for _, c := range cases {
		if got := Overlaps(c.s1, c.e1, c.s2, c.e2); got != c.want {
			t.Fatalf("Overlaps(%d,%d,%d,%d) = %v, want %v", c.s1, c.e1, c.s2, c.e2, got, c.want)
		}
	}
}

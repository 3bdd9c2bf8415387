package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"court-booking/internal/engine"
)

func newAvailabilityService(fx *bookingFixture) *availabilityService {
	svc := NewAvailabilityService(fx.repo, fx.config, zap.NewNop()).(*availabilityService)
	svc.now = func() time.Time { return fx.clockTime }
	return svc
}

func TestGetMatrixReflectsReservation(t *testing.T) {
	fx := newBookingFixture(t)
	fx.addRule(nil, 0, 1440, 100000)
	svc := newAvailabilityService(fx)

	resp, err := fx.svc.CheckAndReserve(context.Background(), fx.reserveReq("10:00", "11:00"))
	if err != nil {
		t.Fatalf("reservation failed: %v", err)
	}

	matrices, err := svc.GetMatrix(context.Background(), []string{fx.subCourt.String()}, "2026-03-14")
	if err != nil {
		t.Fatalf("get matrix failed: %v", err)
	}
	if len(matrices) != 1 {
		t.Fatalf("expected one matrix, got %d", len(matrices))
	}

	m := matrices[0]
	if len(m.Slots) != 48 {
		t.Fatalf("expected 48 slots for 30 minute grid, got %d", len(m.Slots))
	}

	// 10:00-11:00 covers slot indexes 20 and 21.
	for _, i := range []int{20, 21} {
		slot := m.Slots[i]
		if slot.BookingID == nil || *slot.BookingID != resp.ID {
			t.Fatalf("slot %d should carry booking %s", i, resp.ID)
		}
		if slot.Status == nil || *slot.Status != string(engine.StatusPending) {
			t.Fatalf("slot %d should be pending", i)
		}
	}
	if m.Slots[19].BookingID != nil || m.Slots[22].BookingID != nil {
		t.Fatal("slots outside the reservation should be free")
	}

	// The two occupied slots merge into one range.
	if len(m.Ranges) != 1 {
		t.Fatalf("expected one occupied range, got %d", len(m.Ranges))
	}
	r := m.Ranges[0]
	if r.StartTime != "10:00" || r.EndTime != "11:00" {
		t.Fatalf("expected range 10:00-11:00, got %s-%s", r.StartTime, r.EndTime)
	}
	if r.BookingID != resp.ID {
		t.Fatalf("range should carry booking %s, got %s", resp.ID, r.BookingID)
	}
}

func TestGetMatrixReleasesExpiredPending(t *testing.T) {
	fx := newBookingFixture(t)
	fx.addRule(nil, 0, 1440, 100000)
	svc := newAvailabilityService(fx)

	if _, err := fx.svc.CheckAndReserve(context.Background(), fx.reserveReq("10:00", "11:00")); err != nil {
		t.Fatalf("reservation failed: %v", err)
	}

	fx.clockTime = fx.clockTime.Add(31 * time.Minute)

	matrices, err := svc.GetMatrix(context.Background(), []string{fx.subCourt.String()}, "2026-03-14")
	if err != nil {
		t.Fatalf("get matrix failed: %v", err)
	}
	for _, slot := range matrices[0].Slots {
		if slot.BookingID != nil {
			t.Fatalf("expired pending booking should not occupy slot %s", slot.StartTime)
		}
	}
}

func TestGetMatrixMalformedSubCourtID(t *testing.T) {
	fx := newBookingFixture(t)
	svc := newAvailabilityService(fx)

	_, err := svc.GetMatrix(context.Background(), []string{"not-a-uuid"}, "2026-03-14")
	if err == nil {
		t.Fatal("expected validation error for malformed sub court id")
	}
}

func TestGetPriceMatrixMergesUniformPrices(t *testing.T) {
	fx := newBookingFixture(t)
	saturday := 6
	fx.addRule(nil, 8*60, 22*60, 50000)
	fx.addRule(&saturday, 8*60, 22*60, 100000)
	svc := newAvailabilityService(fx)

	days, err := svc.GetPriceMatrix(context.Background(), fx.courtID.String())
	if err != nil {
		t.Fatalf("get price matrix failed: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	for _, day := range days {
		if len(day.Ranges) != 1 {
			t.Fatalf("day %d: expected one merged price range, got %d", day.DayOfWeek, len(day.Ranges))
		}
		r := day.Ranges[0]
		if r.StartTime != "08:00" || r.EndTime != "22:00" {
			t.Fatalf("day %d: expected range 08:00-22:00, got %s-%s", day.DayOfWeek, r.StartTime, r.EndTime)
		}
		want := 50000.0
		if day.DayOfWeek == saturday {
			want = 100000.0
		}
		if r.Price != want {
			t.Fatalf("day %d: expected price %v, got %v", day.DayOfWeek, want, r.Price)
		}
	}

	// Slots outside the schedule carry no price.
	if days[0].Slots[0].Price != nil {
		t.Fatal("slot before 08:00 should be unpriced")
	}
}

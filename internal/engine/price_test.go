package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func dptr(d int) *int { return &d }

func slotAt(start, width int) Slot {
	return Slot{Index: start / width, StartMinute: start, EndMinute: start + width}
}

func TestResolvePrice_DaySpecificBeatsWildcard(t *testing.T) {
	rules := []PriceRule{
		{ID: uuid.New(), DayOfWeek: dptr(1), StartMinute: 480, EndMinute: 840, PricePerHour: 100000},
		{ID: uuid.New(), DayOfWeek: nil, StartMinute: 0, EndMinute: DayMinutes, PricePerHour: 50000},
	}
	slot := slotAt(540, 30) // 09:00-09:30

	monday := ResolvePrice(1, slot, rules, nil)
	if monday == nil || monday.PricePerHour != 100000 {
		t.Fatalf("Monday 09:00 should resolve to 100000, got %+v", monday)
	}

	tuesday := ResolvePrice(2, slot, rules, nil)
	if tuesday == nil || tuesday.PricePerHour != 50000 {
		t.Fatalf("Tuesday 09:00 should fall back to wildcard 50000, got %+v", tuesday)
	}
}

func TestResolvePrice_NoMatch(t *testing.T) {
	rules := []PriceRule{
		{ID: uuid.New(), DayOfWeek: dptr(3), StartMinute: 480, EndMinute: 600, PricePerHour: 75000},
	}

	if got := ResolvePrice(3, slotAt(600, 30), rules, nil); got != nil {
		t.Fatalf("slot outside the rule window should be unpriced, got %+v", got)
	}
	if got := ResolvePrice(4, slotAt(480, 30), rules, nil); got != nil {
		t.Fatalf("other day should be unpriced, got %+v", got)
	}
}

func TestResolvePrice_PartialCoverDoesNotMatch(t *testing.T) {
	rules := []PriceRule{
		{ID: uuid.New(), DayOfWeek: nil, StartMinute: 480, EndMinute: 495, PricePerHour: 60000},
	}
	// Rule covers only the first half of the 08:00-08:30 slot.
	if got := ResolvePrice(0, slotAt(480, 30), rules, nil); got != nil {
		t.Fatalf("rule must fully contain the slot window to match, got %+v", got)
	}
}

func TestResolvePrice_SameScopeOverlapPicksNewest(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	older := PriceRule{ID: uuid.New(), DayOfWeek: dptr(5), StartMinute: 480, EndMinute: 720, PricePerHour: 80000, CreatedAt: base}
	newer := PriceRule{ID: uuid.New(), DayOfWeek: dptr(5), StartMinute: 600, EndMinute: 840, PricePerHour: 90000, CreatedAt: base.Add(time.Hour)}

	var warned int
	onConflict := func(kept, shadowed PriceRule) {
		warned++
		if kept.ID != newer.ID || shadowed.ID != older.ID {
			t.Fatalf("conflict callback got kept=%s shadowed=%s, want kept=%s shadowed=%s",
				kept.ID, shadowed.ID, newer.ID, older.ID)
		}
	}

	// Both rules cover 10:00-10:30; must not crash and must pick the newest,
	// regardless of input order.
	for _, rules := range [][]PriceRule{{older, newer}, {newer, older}} {
		warned = 0
		got := ResolvePrice(5, slotAt(600, 30), rules, onConflict)
		if got == nil || got.ID != newer.ID {
			t.Fatalf("expected newest rule to win, got %+v", got)
		}
		if warned == 0 {
			t.Fatal("expected a data-quality warning for same-scope overlap")
		}
	}
}

func TestCheckRuleOverlap(t *testing.T) {
	court := uuid.New()
	existing := []PriceRule{
		{ID: uuid.New(), SupperCourtID: court, DayOfWeek: dptr(2), StartMinute: 480, EndMinute: 720, PricePerHour: 70000},
		{ID: uuid.New(), SupperCourtID: court, DayOfWeek: nil, StartMinute: 0, EndMinute: DayMinutes, PricePerHour: 50000},
	}

	// Same day, overlapping window: rejected.
	err := CheckRuleOverlap(existing, PriceRule{DayOfWeek: dptr(2), StartMinute: 600, EndMinute: 900, PricePerHour: 90000})
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for same-scope overlap, got %v", err)
	}

	// Day-specific against the wildcard is precedence, not a conflict.
	if err := CheckRuleOverlap(existing, PriceRule{DayOfWeek: dptr(3), StartMinute: 0, EndMinute: 720, PricePerHour: 90000}); err != nil {
		t.Fatalf("different scope should not conflict: %v", err)
	}

	// Adjacent same-day windows are fine.
	if err := CheckRuleOverlap(existing, PriceRule{DayOfWeek: dptr(2), StartMinute: 720, EndMinute: 900, PricePerHour: 90000}); err != nil {
		t.Fatalf("adjacent windows should not conflict: %v", err)
	}

	// Inverted window is a configuration error on its own.
	if err := CheckRuleOverlap(nil, PriceRule{StartMinute: 600, EndMinute: 600}); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for empty window, got %v", err)
	}
}

package engine

import (
	"errors"
	"testing"
)

func TestGenerateSlots_CoversDay(t *testing.T) {
	for width := 1; width <= DayMinutes; width++ {
		if DayMinutes%width != 0 {
			continue
		}

		slots, err := GenerateSlots(width)
		if err != nil {
			t.Fatalf("width %d: unexpected error %v", width, err)
		}
		if len(slots) != DayMinutes/width {
			t.Fatalf("width %d: expected %d slots, got %d", width, DayMinutes/width, len(slots))
		}

		prevEnd := 0
		for i, s := range slots {
			if s.Index != i {
				t.Fatalf("width %d: slot %d has index %d", width, i, s.Index)
			}
			if s.StartMinute != prevEnd {
				t.Fatalf("width %d: gap or overlap at slot %d (start %d, previous end %d)", width, i, s.StartMinute, prevEnd)
			}
			if s.EndMinute-s.StartMinute != width {
				t.Fatalf("width %d: slot %d spans %d minutes", width, i, s.EndMinute-s.StartMinute)
			}
			prevEnd = s.EndMinute
		}
		if prevEnd != DayMinutes {
			t.Fatalf("width %d: day ends at %d, want %d", width, prevEnd, DayMinutes)
		}
	}
}

func TestGenerateSlots_RejectsBadWidth(t *testing.T) {
	for _, width := range []int{0, -30, 7, 25, 1441} {
		_, err := GenerateSlots(width)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("width %d: expected ConfigurationError, got %v", width, err)
		}
	}
}

func TestGenerateSlots_Default(t *testing.T) {
	slots, err := GenerateSlots(DefaultSlotWidth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 48 {
		t.Fatalf("expected 48 slots, got %d", len(slots))
	}
	if FormatMinutes(slots[20].StartMinute) != "10:00" || FormatMinutes(slots[20].EndMinute) != "10:30" {
		t.Fatalf("slot 20 is %s-%s, want 10:00-10:30",
			FormatMinutes(slots[20].StartMinute), FormatMinutes(slots[20].EndMinute))
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"24:00", DayMinutes, false},
		{"10:15:00", 615, false},
		{"10:15:30", 0, true},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"9h30", 0, true},
		{"", 0, true},
		{"-1:00", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if !errors.Is(err, ErrInvalidClock) {
				t.Fatalf("ParseClock(%q): expected ErrInvalidClock, got %v", c.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatMinutes_RoundTrip(t *testing.T) {
	for m := 0; m <= DayMinutes; m += 15 {
		back, err := ParseClock(FormatMinutes(m))
		if err != nil {
			t.Fatalf("round trip %d: %v", m, err)
		}
		if back != m {
			t.Fatalf("round trip %d came back as %d", m, back)
		}
	}
}

func TestAlignedToGrid(t *testing.T) {
	if !AlignedToGrid(600, 660, 30) {
		t.Fatal("10:00-11:00 should align to 30 minute slots")
	}
	if AlignedToGrid(600, 645, 30) {
		t.Fatal("10:00-10:45 should not align to 30 minute slots")
	}
	if AlignedToGrid(0, 30, 0) {
		t.Fatal("zero width never aligns")
	}
}

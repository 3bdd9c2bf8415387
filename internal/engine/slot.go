package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// DayMinutes is the span of one calendar day in minutes.
const DayMinutes = 24 * 60

// DefaultSlotWidth is the default bookable unit of 30 minutes (48 slots/day).
const DefaultSlotWidth = 30

// Slot is one fixed-width time bucket of a calendar day.
// Slot i covers [i*width, (i+1)*width) minutes from midnight.
type Slot struct {
	Index       int
	StartMinute int
	EndMinute   int
}

// GenerateSlots produces the ordered slot grid covering [00:00, 24:00)
// with no gaps or overlaps. widthMinutes must evenly divide 1440.
func GenerateSlots(widthMinutes int) ([]Slot, error) {
	if widthMinutes <= 0 || DayMinutes%widthMinutes != 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("slot width %d does not evenly divide %d minutes", widthMinutes, DayMinutes),
		}
	}

	n := DayMinutes / widthMinutes
	slots := make([]Slot, n)
	for i := 0; i < n; i++ {
		slots[i] = Slot{
			Index:       i,
			StartMinute: i * widthMinutes,
			EndMinute:   (i + 1) * widthMinutes,
		}
	}

	return slots, nil
}

// FormatMinutes renders minutes-from-midnight as HH:MM. 1440 renders as 24:00
// so that an exclusive range end covering the last slot stays printable.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock parses "HH:MM" (or "HH:MM:SS" with zero seconds) into
// minutes-from-midnight. "24:00" is accepted as an exclusive range end.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second != 0 {
			return 0, fmt.Errorf("%w: %q has sub-minute seconds", ErrInvalidClock, value)
		}
	}

	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	total := hour*60 + minute
	if total > DayMinutes || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("%w: %q is outside the day", ErrInvalidClock, value)
	}

	return total, nil
}

// AlignedToGrid reports whether [startMinute, endMinute) lands exactly on
// slot boundaries for the given width.
func AlignedToGrid(startMinute, endMinute, widthMinutes int) bool {
	if widthMinutes <= 0 {
		return false
	}
	return startMinute%widthMinutes == 0 && endMinute%widthMinutes == 0
}

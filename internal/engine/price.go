package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PriceRule is a day-of-week-scoped time range with an hourly price.
// A nil DayOfWeek applies to all days; 0 = Sunday .. 6 = Saturday.
type PriceRule struct {
	ID            uuid.UUID
	SupperCourtID uuid.UUID
	DayOfWeek     *int
	StartMinute   int
	EndMinute     int
	PricePerHour  float64
	CreatedAt     time.Time
}

func (r PriceRule) covers(slot Slot) bool {
	return r.StartMinute <= slot.StartMinute && slot.EndMinute <= r.EndMinute
}

func (r PriceRule) matchesDay(dayOfWeek int) bool {
	return r.DayOfWeek == nil || *r.DayOfWeek == dayOfWeek
}

// sameScope reports whether two rules compete at the same precedence level:
// both wildcard, or both scoped to the same day.
func sameScope(a, b PriceRule) bool {
	if a.DayOfWeek == nil && b.DayOfWeek == nil {
		return true
	}
	if a.DayOfWeek != nil && b.DayOfWeek != nil {
		return *a.DayOfWeek == *b.DayOfWeek
	}
	return false
}

// RuleConflictFunc receives pairs of same-scope rules that overlap the same
// slot with different prices. This is a data-quality signal for operators,
// not a per-request failure.
type RuleConflictFunc func(kept, shadowed PriceRule)

// ResolvePrice maps (dayOfWeek, slot) to the governing price rule.
//
// A rule matches when its window fully contains the slot window and its day
// matches exactly or is the wildcard; an exact-day rule always beats a
// wildcard rule. No match means the slot is unpriced (nil). Same-scope
// overlapping rules are an inconsistent configuration: the most recently
// defined rule wins deterministically and onConflict is invoked.
func ResolvePrice(dayOfWeek int, slot Slot, rules []PriceRule, onConflict RuleConflictFunc) *PriceRule {
	var exact, wildcard []PriceRule
	for _, r := range rules {
		if !r.covers(slot) || !r.matchesDay(dayOfWeek) {
			continue
		}
		if r.DayOfWeek != nil {
			exact = append(exact, r)
		} else {
			wildcard = append(wildcard, r)
		}
	}

	candidates := exact
	if len(candidates) == 0 {
		candidates = wildcard
	}
	if len(candidates) == 0 {
		return nil
	}

	winner := candidates[0]
	for _, r := range candidates[1:] {
		if r.CreatedAt.Before(winner.CreatedAt) {
			if r.PricePerHour != winner.PricePerHour && onConflict != nil {
				onConflict(winner, r)
			}
			continue
		}
		if r.PricePerHour != winner.PricePerHour && onConflict != nil {
			onConflict(r, winner)
		}
		winner = r
	}

	return &winner
}

// CheckRuleOverlap rejects a candidate rule that overlaps an existing rule
// of the same scope. Contradictory rules are a configuration error to catch
// at creation time, not to resolve silently at query time.
func CheckRuleOverlap(existing []PriceRule, candidate PriceRule) error {
	if candidate.StartMinute >= candidate.EndMinute {
		return &ConfigurationError{
			Reason: fmt.Sprintf("price rule start %s must be before end %s",
				FormatMinutes(candidate.StartMinute), FormatMinutes(candidate.EndMinute)),
		}
	}

	for _, r := range existing {
		if !sameScope(r, candidate) {
			continue
		}
		if Overlaps(r.StartMinute, r.EndMinute, candidate.StartMinute, candidate.EndMinute) {
			return &ConfigurationError{
				Reason: fmt.Sprintf("price rule %s-%s overlaps existing rule %s (%s-%s) of the same scope",
					FormatMinutes(candidate.StartMinute), FormatMinutes(candidate.EndMinute),
					r.ID, FormatMinutes(r.StartMinute), FormatMinutes(r.EndMinute)),
			}
		}
	}

	return nil
}

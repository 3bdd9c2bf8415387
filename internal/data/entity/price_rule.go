package entity

import "github.com/google/uuid"

// PriceRule scopes an hourly price to a day of week and time window.
// A NULL day_of_week applies to all days.
type PriceRule struct {
	BaseSimple
	SupperCourtID uuid.UUID `db:"supper_court_id"`
	DayOfWeek     *int      `db:"day_of_week"`
	StartMinute   int       `db:"start_minute"`
	EndMinute     int       `db:"end_minute"`
	PricePerHour  float64   `db:"price_per_hour"`
}

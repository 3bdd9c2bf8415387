package response

import (
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/engine"
)

type SupperCourtResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SubCourtResponse struct {
	ID            string    `json:"id"`
	SupperCourtID string    `json:"supper_court_id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}

type PriceRuleResponse struct {
	ID           string    `json:"id"`
	DayOfWeek    *int      `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	PricePerHour float64   `json:"price_per_hour"`
	CreatedAt    time.Time `json:"created_at"`
}

// Helper converters

func SupperCourtToResponse(court *entity.SupperCourt) SupperCourtResponse {
	return SupperCourtResponse{
		ID:          court.ID.String(),
		OwnerID:     court.OwnerID.String(),
		Name:        court.Name,
		Address:     court.Address,
		Description: court.Description,
		CreatedAt:   court.CreatedAt,
	}
}

func SubCourtToResponse(subCourt *entity.SubCourt) SubCourtResponse {
	return SubCourtResponse{
		ID:            subCourt.ID.String(),
		SupperCourtID: subCourt.SupperCourtID.String(),
		Name:          subCourt.Name,
		CreatedAt:     subCourt.CreatedAt,
	}
}

func PriceRuleToResponse(rule *entity.PriceRule) PriceRuleResponse {
	return PriceRuleResponse{
		ID:           rule.ID.String(),
		DayOfWeek:    rule.DayOfWeek,
		StartTime:    engine.FormatMinutes(rule.StartMinute),
		EndTime:      engine.FormatMinutes(rule.EndMinute),
		PricePerHour: rule.PricePerHour,
		CreatedAt:    rule.CreatedAt,
	}
}

package request

type CreateSupperCourtRequest struct {
	OwnerID     string  `json:"owner_id" validate:"required,uuid4"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Address     string  `json:"address" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type CreateSubCourtRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type CreatePriceRuleRequest struct {
	// DayOfWeek 0 (Sunday) through 6; omit to apply to all days.
	DayOfWeek    *int    `json:"day_of_week,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

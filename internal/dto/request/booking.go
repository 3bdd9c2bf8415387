package request

type BookingRange struct {
	SubCourtID string `json:"sub_court_id" validate:"required,uuid4"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}

type CreateBookingRequest struct {
	UserID        string         `json:"user_id" validate:"required,uuid4"`
	SupperCourtID string         `json:"supper_court_id" validate:"required,uuid4"`
	Date          string         `json:"date" validate:"required,datetime=2006-01-02"`
	Ranges        []BookingRange `json:"ranges" validate:"required,min=1,dive"`
}

type TransitionRequest struct {
	TargetStatus string  `json:"target_status" validate:"required,oneof=confirmed rejected cancelled expired locked out_of_system"`
	Actor        string  `json:"actor" validate:"required"`
	Reason       *string `json:"reason,omitempty"`
}

type AttachBillRequest struct {
	ImgBill string `json:"img_bill" validate:"required,url"`
}

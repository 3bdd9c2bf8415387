package request

type MatrixRequest struct {
	SubCourtIDs []string `json:"sub_court_ids" validate:"required,min=1,dive,uuid4"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
}

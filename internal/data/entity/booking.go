package entity

import (
	"time"

	"github.com/google/uuid"

	"court-booking/internal/engine"
)

type Booking struct {
	Base
	Code          string               `db:"code"`
	UserID        uuid.UUID            `db:"user_id"`
	SupperCourtID uuid.UUID            `db:"supper_court_id"`
	Status        engine.BookingStatus `db:"status"`
	TotalPrice    float64              `db:"total_price"`
	ImgBill       *string              `db:"img_bill"`
	ExpiredAt     time.Time            `db:"expired_at"`
}

package response

import (
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/engine"
)

type BookingItemResponse struct {
	ID         string  `json:"id"`
	SubCourtID string  `json:"sub_court_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Price      float64 `json:"price"`
}

type BookingResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	UserID        string                `json:"user_id"`
	SupperCourtID string                `json:"supper_court_id"`
	Status        engine.BookingStatus  `json:"status"`
	TotalPrice    float64               `json:"total_price"`
	ImgBill       *string               `json:"img_bill,omitempty"`
	Items         []BookingItemResponse `json:"items"`
	ExpiredAt     time.Time             `json:"expired_at"`
	CreatedAt     time.Time             `json:"created_at"`
}

type TransitionResponse struct {
	BookingID string               `json:"booking_id"`
	Status    engine.BookingStatus `json:"status"`
}

// Helper converters

func BookingItemToResponse(item *entity.BookingItem) BookingItemResponse {
	return BookingItemResponse{
		ID:         item.ID.String(),
		SubCourtID: item.SubCourtID.String(),
		Date:       item.PlayDate.Format(time.DateOnly),
		StartTime:  engine.FormatMinutes(item.StartMinute),
		EndTime:    engine.FormatMinutes(item.EndMinute),
		Price:      item.Price,
	}
}

func BookingToResponse(booking *entity.Booking, items []*entity.BookingItem) BookingResponse {
	itemResponses := make([]BookingItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = BookingItemToResponse(item)
	}

	return BookingResponse{
		ID:            booking.ID.String(),
		Code:          booking.Code,
		UserID:        booking.UserID.String(),
		SupperCourtID: booking.SupperCourtID.String(),
		Status:        booking.Status,
		TotalPrice:    booking.TotalPrice,
		ImgBill:       booking.ImgBill,
		Items:         itemResponses,
		ExpiredAt:     booking.ExpiredAt,
		CreatedAt:     booking.CreatedAt,
	}
}

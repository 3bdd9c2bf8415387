package adaptor

import (
	"court-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Court        *CourtHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Court:        NewCourtHandler(service.Court, log),
	}
}

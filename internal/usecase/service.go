package usecase

import (
	"court-booking/internal/data/repository"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking      BookingService
	Availability AvailabilityService
	Court        CourtService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Booking:      NewBookingService(repo, config, log),
		Availability: NewAvailabilityService(repo, config, log),
		Court:        NewCourtService(repo, log),
	}
}

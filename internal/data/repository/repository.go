package repository

import (
	"court-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	SupperCourt SupperCourtRepository
	SubCourt    SubCourtRepository
	PriceRule   PriceRuleRepository
	Booking     BookingRepository
	BookingItem BookingItemRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		SupperCourt: NewSupperCourtRepository(db, log),
		SubCourt:    NewSubCourtRepository(db, log),
		PriceRule:   NewPriceRuleRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingItem: NewBookingItemRepository(db, log),
	}
}

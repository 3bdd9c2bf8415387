package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/internal/engine"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetMatrix builds the per-slot occupancy and price view for each
	// requested sub-court on one date. Read-only, recomputed per query.
	GetMatrix(ctx context.Context, subCourtIDs []string, date string) ([]response.SubCourtMatrixResponse, error)
	// GetPriceMatrix projects the supper court's price schedule onto the
	// slot grid for every day of the week.
	GetPriceMatrix(ctx context.Context, supperCourtID string) ([]response.DayPriceMatrixResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAvailabilityService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "availability")),
		now:    time.Now,
	}
}

func (s *availabilityService) GetMatrix(ctx context.Context, subCourtIDs []string, date string) ([]response.SubCourtMatrixResponse, error) {
	req := request.MatrixRequest{SubCourtIDs: subCourtIDs, Date: date}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Matrix request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	playDate, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, err)
	}

	grid, err := engine.GenerateSlots(s.config.Booking.SlotWidthMinutes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dayOfWeek := int(playDate.Weekday())

	// Price rules are per supper court; sub-courts of one venue share them.
	rulesByCourt := make(map[uuid.UUID][]engine.PriceRule)

	matrices := make([]response.SubCourtMatrixResponse, 0, len(subCourtIDs))
	for _, idStr := range subCourtIDs {
		subCourtID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid sub court ID format %s: %w", idStr, err)
		}

		subCourt, err := s.repo.SubCourt.FindByID(ctx, subCourtID)
		if err != nil {
			return nil, fmt.Errorf("find sub court: %w", err)
		}
		if subCourt == nil {
			return nil, &engine.NotFoundError{Resource: "sub court", ID: idStr}
		}

		rules, ok := rulesByCourt[subCourt.SupperCourtID]
		if !ok {
			stored, err := s.repo.PriceRule.FindBySupperCourtID(ctx, subCourt.SupperCourtID)
			if err != nil {
				return nil, fmt.Errorf("load price rules: %w", err)
			}
			rules = toEngineRules(stored)
			rulesByCourt[subCourt.SupperCourtID] = rules
		}

		items, bookings, err := s.repo.BookingItem.FindByDateWithBookings(ctx, subCourtID, playDate)
		if err != nil {
			return nil, err
		}

		matrix := engine.BuildMatrix(grid, items, bookings, rules, dayOfWeek, now, s.warnRuleConflict)

		for _, slot := range matrix {
			if len(slot.BookingIDs) > 1 {
				// At most one active item may cover a slot; this means the
				// conflict detector was bypassed somewhere.
				s.log.Error("Multiple active bookings cover one slot",
					zap.String("sub_court_id", idStr),
					zap.String("date", date),
					zap.String("slot", engine.FormatMinutes(slot.StartMinute)),
					zap.Int("booking_count", len(slot.BookingIDs)),
				)
			}
		}

		matrices = append(matrices, response.MatrixToResponse(idStr, date, matrix))
	}

	return matrices, nil
}

func (s *availabilityService) GetPriceMatrix(ctx context.Context, supperCourtID string) ([]response.DayPriceMatrixResponse, error) {
	id, err := uuid.Parse(supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid supper court ID format %s: %w", supperCourtID, err)
	}

	court, err := s.repo.SupperCourt.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find supper court: %w", err)
	}
	if court == nil {
		return nil, &engine.NotFoundError{Resource: "supper court", ID: supperCourtID}
	}

	stored, err := s.repo.PriceRule.FindBySupperCourtID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load price rules: %w", err)
	}
	rules := toEngineRules(stored)

	grid, err := engine.GenerateSlots(s.config.Booking.SlotWidthMinutes)
	if err != nil {
		return nil, err
	}

	days := make([]response.DayPriceMatrixResponse, 7)
	for day := 0; day < 7; day++ {
		days[day] = response.PriceMatrixToResponse(day, grid, rules, s.warnRuleConflict)
	}

	return days, nil
}

func (s *availabilityService) warnRuleConflict(kept, shadowed engine.PriceRule) {
	s.log.Warn("Overlapping price rules of the same scope",
		zap.String("kept_rule_id", kept.ID.String()),
		zap.String("shadowed_rule_id", shadowed.ID.String()),
		zap.String("supper_court_id", kept.SupperCourtID.String()),
	)
}

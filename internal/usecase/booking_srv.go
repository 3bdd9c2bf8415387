package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/internal/engine"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingBill guards confirmation: a pending booking cannot be confirmed
// before payment evidence has been attached.
var ErrMissingBill = errors.New("payment evidence (img_bill) is required before confirmation")

type BookingService interface {
	// CheckAndReserve validates the requested ranges, prices them and
	// creates the booking atomically against concurrent requests for the
	// same sub-court/date/time window.
	CheckAndReserve(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	Transition(ctx context.Context, bookingID string, req *request.TransitionRequest) (*response.TransitionResponse, error)
	AttachBill(ctx context.Context, bookingID string, req *request.AttachBillRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
		now:    time.Now,
	}
}

func (s *bookingService) CheckAndReserve(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", req.UserID, err)
	}
	supperCourtID, err := uuid.Parse(req.SupperCourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid supper court ID format %s: %w", req.SupperCourtID, err)
	}
	playDate, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", req.Date, err)
	}

	court, err := s.repo.SupperCourt.FindByID(ctx, supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("find supper court: %w", err)
	}
	if court == nil {
		return nil, &engine.NotFoundError{Resource: "supper court", ID: req.SupperCourtID}
	}

	width := s.config.Booking.SlotWidthMinutes
	ranges := make([]engine.TimeRange, len(req.Ranges))
	for i, r := range req.Ranges {
		subCourtID, err := uuid.Parse(r.SubCourtID)
		if err != nil {
			return nil, fmt.Errorf("invalid sub court ID format %s: %w", r.SubCourtID, err)
		}

		subCourt, err := s.repo.SubCourt.FindByID(ctx, subCourtID)
		if err != nil {
			return nil, fmt.Errorf("find sub court: %w", err)
		}
		if subCourt == nil {
			return nil, &engine.NotFoundError{Resource: "sub court", ID: r.SubCourtID}
		}
		if subCourt.SupperCourtID != supperCourtID {
			return nil, fmt.Errorf("invalid request: sub court %s does not belong to supper court %s", r.SubCourtID, req.SupperCourtID)
		}

		start, err := engine.ParseClock(r.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := engine.ParseClock(r.EndTime)
		if err != nil {
			return nil, err
		}
		if !engine.AlignedToGrid(start, end, width) {
			return nil, fmt.Errorf("invalid range %s-%s: not aligned to %d minute slots", r.StartTime, r.EndTime, width)
		}

		ranges[i] = engine.TimeRange{SubCourtID: subCourtID, StartMinute: start, EndMinute: end}
	}

	now := s.now()

	// Fast pre-check against the current occupancy; the storage transaction
	// below re-checks under the lock, so this races at worst into a second
	// ConflictError there.
	existing, err := s.activeItemsFor(ctx, ranges, playDate, now)
	if err != nil {
		return nil, err
	}
	if err := engine.CheckRanges(existing, ranges); err != nil {
		return nil, err
	}

	rules, err := s.engineRules(ctx, supperCourtID)
	if err != nil {
		return nil, err
	}

	grid, err := engine.GenerateSlots(width)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:          utils.GenerateBookingCode(),
		UserID:        userID,
		SupperCourtID: supperCourtID,
		Status:        engine.StatusPending,
		ExpiredAt:     now.Add(time.Duration(s.config.Booking.ExpiryMinutes) * time.Minute),
	}

	dayOfWeek := int(playDate.Weekday())
	items := make([]*entity.BookingItem, len(ranges))
	for i, r := range ranges {
		price, err := s.priceRange(grid, r, rules, dayOfWeek)
		if err != nil {
			return nil, err
		}

		items[i] = &entity.BookingItem{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:   booking.ID,
			SubCourtID:  r.SubCourtID,
			PlayDate:    playDate,
			StartMinute: r.StartMinute,
			EndMinute:   r.EndMinute,
			Price:       price,
			Active:      true,
		}
		booking.TotalPrice += price
	}

	if err := s.repo.Booking.CreateWithItems(ctx, booking, items); err != nil {
		var conflict *engine.ConflictError
		if errors.As(err, &conflict) {
			s.log.Info("Booking rejected on conflict",
				zap.String("user_id", req.UserID),
				zap.String("date", req.Date),
				zap.String("winner_booking_id", conflict.BookingID.String()),
			)
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", req.UserID),
			zap.String("supper_court_id", req.SupperCourtID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("code", booking.Code),
		zap.String("user_id", req.UserID),
		zap.Int("range_count", len(items)),
		zap.Float64("total_price", booking.TotalPrice),
		zap.Time("expired_at", booking.ExpiredAt),
	)

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, &engine.NotFoundError{Resource: "booking", ID: bookingID}
	}

	// Fold lazy expiry into the read so no caller observes a pending
	// booking past its deadline.
	booking.Status = engine.EffectiveStatus(booking.Status, booking.ExpiredAt, s.now())

	items, err := s.repo.BookingItem.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking items: %w", err)
	}

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	now := s.now()
	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		booking.Status = engine.EffectiveStatus(booking.Status, booking.ExpiredAt, now)
		items, err := s.repo.BookingItem.FindByBookingID(ctx, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("find booking items: %w", err)
		}
		bookingResponses[i] = response.BookingToResponse(booking, items)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) Transition(ctx context.Context, bookingID string, req *request.TransitionRequest) (*response.TransitionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Transition validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, &engine.NotFoundError{Resource: "booking", ID: bookingID}
	}

	now := s.now()

	// Persist lazy expiry before evaluating the transition; expiring an
	// already-expired booking is a no-op, so concurrent attempts are safe.
	if engine.IsExpired(booking.Status, booking.ExpiredAt, now) {
		if _, err := s.repo.Booking.ExpireOverdue(ctx, id, now); err != nil {
			return nil, err
		}
		booking.Status = engine.StatusExpired
	}

	target := engine.BookingStatus(req.TargetStatus)
	if target == engine.StatusConfirmed && booking.ImgBill == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrMissingBill)
	}

	newStatus, err := engine.Transition(booking.Status, booking.ExpiredAt, target, now)
	if err != nil {
		return nil, err
	}

	if newStatus != booking.Status {
		if err := s.repo.Booking.UpdateStatus(ctx, id, newStatus); err != nil {
			return nil, err
		}
	}

	s.log.Info("Booking transitioned",
		zap.String("booking_id", bookingID),
		zap.String("from", string(booking.Status)),
		zap.String("to", string(newStatus)),
		zap.String("actor", req.Actor),
		zap.Stringp("reason", req.Reason),
	)

	return &response.TransitionResponse{BookingID: bookingID, Status: newStatus}, nil
}

func (s *bookingService) AttachBill(ctx context.Context, bookingID string, req *request.AttachBillRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, &engine.NotFoundError{Resource: "booking", ID: bookingID}
	}

	// Evidence only makes sense while the booking awaits confirmation.
	if engine.EffectiveStatus(booking.Status, booking.ExpiredAt, s.now()) != engine.StatusPending {
		return nil, &engine.InvalidTransitionError{
			Current: engine.EffectiveStatus(booking.Status, booking.ExpiredAt, s.now()),
			Target:  engine.StatusPending,
		}
	}

	if err := s.repo.Booking.SetImgBill(ctx, id, req.ImgBill); err != nil {
		return nil, err
	}
	booking.ImgBill = &req.ImgBill

	s.log.Info("Payment evidence attached",
		zap.String("booking_id", bookingID),
	)

	items, err := s.repo.BookingItem.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking items: %w", err)
	}

	resp := response.BookingToResponse(booking, items)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) activeItemsFor(ctx context.Context, ranges []engine.TimeRange, playDate time.Time, now time.Time) ([]engine.ActiveItem, error) {
	seen := make(map[uuid.UUID]bool)
	var existing []engine.ActiveItem
	for _, r := range ranges {
		if seen[r.SubCourtID] {
			continue
		}
		seen[r.SubCourtID] = true

		items, err := s.repo.BookingItem.FindActiveByDate(ctx, r.SubCourtID, playDate, now)
		if err != nil {
			return nil, fmt.Errorf("check availability: %w", err)
		}
		existing = append(existing, items...)
	}
	return existing, nil
}

func (s *bookingService) engineRules(ctx context.Context, supperCourtID uuid.UUID) ([]engine.PriceRule, error) {
	stored, err := s.repo.PriceRule.FindBySupperCourtID(ctx, supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("load price rules: %w", err)
	}
	return toEngineRules(stored), nil
}

// priceRange prices one requested range as the sum of its slot prices. A
// slot without any matching price rule means the schedule has a hole; the
// range is rejected rather than rented out for free.
func (s *bookingService) priceRange(grid []engine.Slot, r engine.TimeRange, rules []engine.PriceRule, dayOfWeek int) (float64, error) {
	width := s.config.Booking.SlotWidthMinutes
	total := 0.0
	for _, slot := range grid {
		if slot.StartMinute < r.StartMinute || slot.EndMinute > r.EndMinute {
			continue
		}
		rule := engine.ResolvePrice(dayOfWeek, slot, rules, s.warnRuleConflict)
		if rule == nil {
			return 0, &engine.ConfigurationError{
				Reason: fmt.Sprintf("no price rule covers %s-%s on day %d",
					engine.FormatMinutes(slot.StartMinute), engine.FormatMinutes(slot.EndMinute), dayOfWeek),
			}
		}
		total += rule.PricePerHour * float64(width) / 60.0
	}
	return total, nil
}

func (s *bookingService) warnRuleConflict(kept, shadowed engine.PriceRule) {
	s.log.Warn("Overlapping price rules of the same scope",
		zap.String("kept_rule_id", kept.ID.String()),
		zap.String("shadowed_rule_id", shadowed.ID.String()),
		zap.String("supper_court_id", kept.SupperCourtID.String()),
	)
}

func toEngineRules(stored []*entity.PriceRule) []engine.PriceRule {
	rules := make([]engine.PriceRule, len(stored))
	for i, r := range stored {
		rules[i] = engine.PriceRule{
			ID:            r.ID,
			SupperCourtID: r.SupperCourtID,
			DayOfWeek:     r.DayOfWeek,
			StartMinute:   r.StartMinute,
			EndMinute:     r.EndMinute,
			PricePerHour:  r.PricePerHour,
			CreatedAt:     r.CreatedAt,
		}
	}
	return rules
}

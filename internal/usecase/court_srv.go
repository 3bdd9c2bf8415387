package usecase

import (
	"context"
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

type CourtService interface {
	CreateSupperCourt(ctx context.Context, req *request.CreateSupperCourtRequest) (*response.SupperCourtResponse, error)
	ListSupperCourts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SupperCourtResponse], error)
	CreateSubCourt(ctx context.Context, supperCourtID string, req *request.CreateSubCourtRequest) (*response.SubCourtResponse, error)
	ListSubCourts(ctx context.Context, supperCourtID string) ([]*response.SubCourtResponse, error)
	CreatePriceRule(ctx context.Context, supperCourtID string, req *request.CreatePriceRuleRequest) (*response.PriceRuleResponse, error)
	ListPriceRules(ctx context.Context, supperCourtID string) ([]*response.PriceRuleResponse, error)
}

type courtService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCourtService(repo *repository.Repository, log *zap.Logger) CourtService {
	return &courtService{
		repo: repo,
		log:  log.With(zap.String("service", "court")),
	}
}

func (s *courtService) CreateSupperCourt(ctx context.Context, req *request.CreateSupperCourtRequest) (*response.SupperCourtResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create supper court validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", req.OwnerID, err)
	}

	now := time.Now()
	court := &entity.SupperCourt{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     ownerID,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}

	if err := s.repo.SupperCourt.Create(ctx, court); err != nil {
		return nil, fmt.Errorf("create supper court: %w", err)
	}

	s.log.Info("Supper court created",
		zap.String("supper_court_id", court.ID.String()),
		zap.String("name", court.Name),
	)

	resp := response.SupperCourtToResponse(court)
	return &resp, nil
}

func (s *courtService) ListSupperCourts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.SupperCourtResponse], error) {
	courts, err := s.repo.SupperCourt.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list supper courts: %w", err)
	}

	total, err := s.repo.SupperCourt.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count supper courts: %w", err)
	}

	courtResponses := make([]response.SupperCourtResponse, len(courts))
	for i, court := range courts {
		courtResponses[i] = response.SupperCourtToResponse(court)
	}

	return response.NewPaginatedResponse(courtResponses, req.Page, req.PerPage, total), nil
}

func (s *courtService) CreateSubCourt(ctx context.Context, supperCourtID string, req *request.CreateSubCourtRequest) (*response.SubCourtResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	courtID, err := uuid.Parse(supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid supper court ID format %s: %w", supperCourtID, err)
	}

	court, err := s.repo.SupperCourt.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("find supper court: %w", err)
	}
	if court == nil {
		return nil, &engine.NotFoundError{Resource: "supper court", ID: supperCourtID}
	}

	now := time.Now()
	subCourt := &entity.SubCourt{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SupperCourtID: courtID,
		Name:          req.Name,
	}

	if err := s.repo.SubCourt.Create(ctx, subCourt); err != nil {
		return nil, fmt.Errorf("create sub court: %w", err)
	}

	s.log.Info("Sub court created",
		zap.String("sub_court_id", subCourt.ID.String()),
		zap.String("supper_court_id", supperCourtID),
		zap.String("name", subCourt.Name),
	)

	resp := response.SubCourtToResponse(subCourt)
	return &resp, nil
}

func (s *courtService) ListSubCourts(ctx context.Context, supperCourtID string) ([]*response.SubCourtResponse, error) {
	courtID, err := uuid.Parse(supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid supper court ID format %s: %w", supperCourtID, err)
	}

	subCourts, err := s.repo.SubCourt.FindBySupperCourtID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("list sub courts: %w", err)
	}

	responses := make([]*response.SubCourtResponse, len(subCourts))
	for i, subCourt := range subCourts {
		resp := response.SubCourtToResponse(subCourt)
		responses[i] = &resp
	}

	return responses, nil
}

func (s *courtService) CreatePriceRule(ctx context.Context, supperCourtID string, req *request.CreatePriceRuleRequest) (*response.PriceRuleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	courtID, err := uuid.Parse(supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid supper court ID format %s: %w", supperCourtID, err)
	}

	court, err := s.repo.SupperCourt.FindByID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("find supper court: %w", err)
	}
	if court == nil {
		return nil, &engine.NotFoundError{Resource: "supper court", ID: supperCourtID}
	}

	start, err := engine.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := engine.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("invalid window %s-%s: start must be before end", req.StartTime, req.EndTime)
	}

	rule := &entity.PriceRule{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		SupperCourtID: courtID,
		DayOfWeek:     req.DayOfWeek,
		StartMinute:   start,
		EndMinute:     end,
		PricePerHour:  req.PricePerHour,
	}

	// Overlap with an existing same-scope rule is rejected inside the
	// repository transaction.
	if err := s.repo.PriceRule.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.log.Info("Price rule created",
		zap.String("price_rule_id", rule.ID.String()),
		zap.String("supper_court_id", supperCourtID),
		zap.String("window", req.StartTime+"-"+req.EndTime),
		zap.Float64("price_per_hour", rule.PricePerHour),
	)

	resp := response.PriceRuleToResponse(rule)
	return &resp, nil
}

func (s *courtService) ListPriceRules(ctx context.Context, supperCourtID string) ([]*response.PriceRuleResponse, error) {
	courtID, err := uuid.Parse(supperCourtID)
	if err != nil {
		return nil, fmt.Errorf("invalid supper court ID format %s: %w", supperCourtID, err)
	}

	rules, err := s.repo.PriceRule.FindBySupperCourtID(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("list price rules: %w", err)
	}

	responses := make([]*response.PriceRuleResponse, len(rules))
	for i, rule := range rules {
		resp := response.PriceRuleToResponse(rule)
		responses[i] = &resp
	}

	return responses, nil
}

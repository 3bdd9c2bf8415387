package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"court-booking/internal/dto/request"
	"court-booking/internal/engine"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CourtHandler struct {
	service usecase.CourtService
	log     *zap.Logger
}

func NewCourtHandler(service usecase.CourtService, log *zap.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		log:     log.With(zap.String("handler", "court")),
	}
}

// CreateSupperCourt handles POST /api/admin/courts
func (h *CourtHandler) CreateSupperCourt(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSupperCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	court, err := h.service.CreateSupperCourt(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create supper court")
		return
	}

	utils.ResponseCreated(w, "success", court)
}

// ListSupperCourts handles GET /api/courts
func (h *CourtHandler) ListSupperCourts(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	// Parse query parameters
	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	courts, err := h.service.ListSupperCourts(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list supper courts")
		return
	}

	utils.ResponseSuccess(w, "success", courts)
}

// CreateSubCourt handles POST /api/admin/courts/{id}/sub-courts
func (h *CourtHandler) CreateSubCourt(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")
	if courtID == "" {
		utils.ResponseBadRequest(w, "Supper court ID is required", nil)
		return
	}

	var req request.CreateSubCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	subCourt, err := h.service.CreateSubCourt(r.Context(), courtID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create sub court")
		return
	}

	utils.ResponseCreated(w, "success", subCourt)
}

// ListSubCourts handles GET /api/courts/{id}/sub-courts
func (h *CourtHandler) ListSubCourts(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")
	if courtID == "" {
		utils.ResponseBadRequest(w, "Supper court ID is required", nil)
		return
	}

	subCourts, err := h.service.ListSubCourts(r.Context(), courtID)
	if err != nil {
		h.handleServiceError(w, err, "list sub courts")
		return
	}

	utils.ResponseSuccess(w, "success", subCourts)
}

// CreatePriceRule handles POST /api/admin/courts/{id}/price-rules
func (h *CourtHandler) CreatePriceRule(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")
	if courtID == "" {
		utils.ResponseBadRequest(w, "Supper court ID is required", nil)
		return
	}

	var req request.CreatePriceRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rule, err := h.service.CreatePriceRule(r.Context(), courtID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create price rule")
		return
	}

	utils.ResponseCreated(w, "success", rule)
}

// ListPriceRules handles GET /api/courts/{id}/price-rules
func (h *CourtHandler) ListPriceRules(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")
	if courtID == "" {
		utils.ResponseBadRequest(w, "Supper court ID is required", nil)
		return
	}

	rules, err := h.service.ListPriceRules(r.Context(), courtID)
	if err != nil {
		h.handleServiceError(w, err, "list price rules")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// handleServiceError maps service errors to HTTP responses
func (h *CourtHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var (
		notFoundErr *engine.NotFoundError
		configErr   *engine.ConfigurationError
	)

	switch {
	case errors.As(err, &notFoundErr):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &configErr):
		h.log.Warn(operation+" failed - configuration problem",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, engine.ErrInvalidClock):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

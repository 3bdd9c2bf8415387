package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"court-booking/internal/engine"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetMatrix handles GET /api/matrix?sub_court_ids=a,b,c&date=2026-09-01
func (h *AvailabilityHandler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawIDs := query.Get("sub_court_ids")
	if rawIDs == "" {
		utils.ResponseBadRequest(w, "sub_court_ids query parameter is required", nil)
		return
	}
	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	subCourtIDs := strings.Split(rawIDs, ",")

	matrix, err := h.service.GetMatrix(r.Context(), subCourtIDs, date)
	if err != nil {
		h.handleServiceError(w, err, "get availability matrix")
		return
	}

	utils.ResponseSuccess(w, "success", matrix)
}

// GetPriceMatrix handles GET /api/courts/{id}/price-matrix
func (h *AvailabilityHandler) GetPriceMatrix(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")
	if courtID == "" {
		utils.ResponseBadRequest(w, "Supper court ID is required", nil)
		return
	}

	matrix, err := h.service.GetPriceMatrix(r.Context(), courtID)
	if err != nil {
		h.handleServiceError(w, err, "get price matrix")
		return
	}

	utils.ResponseSuccess(w, "success", matrix)
}

// handleServiceError maps service errors to HTTP responses
func (h *AvailabilityHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn("Invalid input for "+operation,
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

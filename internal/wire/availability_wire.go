package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// GET /api/matrix?sub_court_ids=a,b&date=YYYY-MM-DD - Per-slot occupancy view
	r.Get("/api/matrix", availabilityHandler.GetMatrix)

	// GET /api/courts/{id}/price-matrix - Weekly price projection on the grid
	r.Get("/api/courts/{id}/price-matrix", availabilityHandler.GetPriceMatrix)
}

package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCourt(r chi.Router, courtHandler *adaptor.CourtHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/courts", func(r chi.Router) {
		// GET /api/courts - List venues with pagination
		r.Get("/", courtHandler.ListSupperCourts)

		// GET /api/courts/{id}/sub-courts - Playing fields of one venue
		r.Get("/{id}/sub-courts", courtHandler.ListSubCourts)

		// GET /api/courts/{id}/price-rules - Raw price schedule
		r.Get("/{id}/price-rules", courtHandler.ListPriceRules)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/courts", func(r chi.Router) {
		// POST /api/admin/courts - Register a venue
		r.Post("/", courtHandler.CreateSupperCourt)

		// POST /api/admin/courts/{id}/sub-courts - Add a playing field
		r.Post("/{id}/sub-courts", courtHandler.CreateSubCourt)

		// POST /api/admin/courts/{id}/price-rules - Add a price rule
		r.Post("/{id}/price-rules", courtHandler.CreatePriceRule)
	})
}

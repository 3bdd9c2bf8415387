package wire

import (
	"court-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/booking - Atomic check-then-insert reservation
	r.Post("/api/booking", bookingHandler.CreateBooking)

	r.Route("/api/booking/{id}", func(r chi.Router) {
		// GET /api/booking/{id} - Booking details with effective status
		r.Get("/", bookingHandler.GetBookingByID)

		// PUT /api/booking/{id}/transition - Drive the booking state machine
		r.Put("/transition", bookingHandler.Transition)

		// PUT /api/booking/{id}/bill - Attach payment evidence
		r.Put("/bill", bookingHandler.AttachBill)
	})

	// GET /api/users/{id}/bookings - Booking history for one user
	r.Get("/api/users/{id}/bookings", bookingHandler.GetUserBookings)
}

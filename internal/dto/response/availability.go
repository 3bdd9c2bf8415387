package response

import (
	"court-booking/internal/engine"
)

// AvailabilitySlotResponse is one slot of the availability matrix.
// ConflictingBookingIDs is only populated when more than one active item
// covers the slot, which indicates an upstream conflict-detection bug.
type AvailabilitySlotResponse struct {
	StartTime             string   `json:"start_time"`
	EndTime               string   `json:"end_time"`
	BookingID             *string  `json:"booking_id"`
	Status                *string  `json:"status"`
	Price                 *float64 `json:"price"`
	ConflictingBookingIDs []string `json:"conflicting_booking_ids,omitempty"`
}

type OccupiedRangeResponse struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	BookingID string  `json:"booking_id"`
	Status    string  `json:"status"`
	Price     float64 `json:"price"`
}

type SubCourtMatrixResponse struct {
	SubCourtID string                     `json:"sub_court_id"`
	Date       string                     `json:"date"`
	Slots      []AvailabilitySlotResponse `json:"slots"`
	Ranges     []OccupiedRangeResponse    `json:"ranges"`
}

type PriceSlotResponse struct {
	PriceID   *string  `json:"price_id"`
	Price     *float64 `json:"price"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
}

type PriceRangeResponse struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Price     float64 `json:"price"`
}

type DayPriceMatrixResponse struct {
	DayOfWeek int                  `json:"day_of_week"`
	Slots     []PriceSlotResponse  `json:"slots"`
	Ranges    []PriceRangeResponse `json:"ranges"`
}

// Helper converters

func MatrixToResponse(subCourtID, date string, matrix []engine.AvailabilitySlot) SubCourtMatrixResponse {
	slots := make([]AvailabilitySlotResponse, len(matrix))
	for i, s := range matrix {
		slot := AvailabilitySlotResponse{
			StartTime: engine.FormatMinutes(s.StartMinute),
			EndTime:   engine.FormatMinutes(s.EndMinute),
			Price:     s.Price,
		}
		if s.Occupied() {
			id := s.BookingIDs[0].String()
			status := string(*s.Status)
			slot.BookingID = &id
			slot.Status = &status
		}
		if len(s.BookingIDs) > 1 {
			ids := make([]string, len(s.BookingIDs))
			for j, bid := range s.BookingIDs {
				ids[j] = bid.String()
			}
			slot.ConflictingBookingIDs = ids
		}
		slots[i] = slot
	}

	width := slotWidth(matrix)
	ranges := make([]OccupiedRangeResponse, 0)
	for _, r := range engine.MergeOccupancy(matrix) {
		ranges = append(ranges, OccupiedRangeResponse{
			StartTime: engine.FormatMinutes(r.StartIndex * width),
			EndTime:   engine.FormatMinutes(r.EndIndex * width),
			BookingID: r.Value.BookingID.String(),
			Status:    string(r.Value.Status),
			Price:     r.Value.Price,
		})
	}

	return SubCourtMatrixResponse{
		SubCourtID: subCourtID,
		Date:       date,
		Slots:      slots,
		Ranges:     ranges,
	}
}

func PriceMatrixToResponse(dayOfWeek int, grid []engine.Slot, rules []engine.PriceRule, onConflict engine.RuleConflictFunc) DayPriceMatrixResponse {
	slots := make([]PriceSlotResponse, len(grid))
	prices := make([]*float64, len(grid))
	for i, slot := range grid {
		ps := PriceSlotResponse{
			StartTime: engine.FormatMinutes(slot.StartMinute),
			EndTime:   engine.FormatMinutes(slot.EndMinute),
		}
		if rule := engine.ResolvePrice(dayOfWeek, slot, rules, onConflict); rule != nil {
			id := rule.ID.String()
			price := rule.PricePerHour
			ps.PriceID = &id
			ps.Price = &price
			prices[i] = &price
		}
		slots[i] = ps
	}

	width := 0
	if len(grid) > 0 {
		width = grid[0].EndMinute - grid[0].StartMinute
	}
	ranges := make([]PriceRangeResponse, 0)
	for _, r := range engine.Merge(prices) {
		ranges = append(ranges, PriceRangeResponse{
			StartTime: engine.FormatMinutes(r.StartIndex * width),
			EndTime:   engine.FormatMinutes(r.EndIndex * width),
			Price:     r.Value,
		})
	}

	return DayPriceMatrixResponse{
		DayOfWeek: dayOfWeek,
		Slots:     slots,
		Ranges:    ranges,
	}
}

func slotWidth(matrix []engine.AvailabilitySlot) int {
	if len(matrix) == 0 {
		return 0
	}
	return matrix[0].EndMinute - matrix[0].StartMinute
}

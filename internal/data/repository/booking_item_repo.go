package repository

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/engine"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingItemRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error)
	// FindActiveByDate returns the items that occupy slots on the given
	// sub-court and date at the given instant. The SQL predicate matches
	// engine.IsExpired so no path observes a pending booking past its
	// deadline.
	FindActiveByDate(ctx context.Context, subCourtID uuid.UUID, playDate time.Time, now time.Time) ([]engine.ActiveItem, error)
	// FindByDateWithBookings returns every item for the sub-court/date
	// together with its booking's status data; occupancy filtering is left
	// to the matrix builder.
	FindByDateWithBookings(ctx context.Context, subCourtID uuid.UUID, playDate time.Time) ([]engine.Item, map[uuid.UUID]engine.BookingRef, error)
}

type bookingItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingItemRepository(db database.PgxIface, log *zap.Logger) BookingItemRepository {
	return &bookingItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_item")),
	}
}

func (r *bookingItemRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	query := `
		SELECT id, booking_id, sub_court_id, play_date, start_minute, end_minute, price, active, created_at
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY play_date, start_minute
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking items by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking items by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var items []*entity.BookingItem
	for rows.Next() {
		var item entity.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.SubCourtID,
			&item.PlayDate,
			&item.StartMinute,
			&item.EndMinute,
			&item.Price,
			&item.Active,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking item row", zap.Error(err))
			return nil, fmt.Errorf("scan booking item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *bookingItemRepository) FindActiveByDate(ctx context.Context, subCourtID uuid.UUID, playDate time.Time, now time.Time) ([]engine.ActiveItem, error) {
	query := `
		SELECT i.booking_id, i.sub_court_id, i.start_minute, i.end_minute
		FROM booking_items i
		INNER JOIN bookings b ON b.id = i.booking_id
		WHERE i.sub_court_id = $1 AND i.play_date = $2 AND i.active
		  AND (b.status IN ('confirmed', 'locked', 'out_of_system')
		       OR (b.status = 'pending' AND b.expired_at > $3))
		ORDER BY i.start_minute
	`

	rows, err := r.db.Query(ctx, query, subCourtID, playDate, now)
	if err != nil {
		r.log.Error("Failed to find active booking items",
			zap.Error(err),
			zap.String("sub_court_id", subCourtID.String()),
			zap.String("play_date", playDate.Format(time.DateOnly)),
		)
		return nil, fmt.Errorf("find active items for sub court %s: %w", subCourtID.String(), err)
	}
	defer rows.Close()

	var items []engine.ActiveItem
	for rows.Next() {
		var item engine.ActiveItem
		if err := rows.Scan(&item.BookingID, &item.SubCourtID, &item.StartMinute, &item.EndMinute); err != nil {
			r.log.Error("Failed to scan active item row", zap.Error(err))
			return nil, fmt.Errorf("scan active item row: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *bookingItemRepository) FindByDateWithBookings(ctx context.Context, subCourtID uuid.UUID, playDate time.Time) ([]engine.Item, map[uuid.UUID]engine.BookingRef, error) {
	query := `
		SELECT i.booking_id, i.sub_court_id, i.start_minute, i.end_minute, i.price,
		       b.status, b.expired_at
		FROM booking_items i
		INNER JOIN bookings b ON b.id = i.booking_id
		WHERE i.sub_court_id = $1 AND i.play_date = $2
		ORDER BY i.start_minute
	`

	rows, err := r.db.Query(ctx, query, subCourtID, playDate)
	if err != nil {
		r.log.Error("Failed to find booking items for date",
			zap.Error(err),
			zap.String("sub_court_id", subCourtID.String()),
			zap.String("play_date", playDate.Format(time.DateOnly)),
		)
		return nil, nil, fmt.Errorf("find items for sub court %s: %w", subCourtID.String(), err)
	}
	defer rows.Close()

	var items []engine.Item
	bookings := make(map[uuid.UUID]engine.BookingRef)
	for rows.Next() {
		var item engine.Item
		var ref engine.BookingRef
		if err := rows.Scan(&item.BookingID, &item.SubCourtID, &item.StartMinute, &item.EndMinute, &item.Price, &ref.Status, &ref.ExpiredAt); err != nil {
			r.log.Error("Failed to scan item row", zap.Error(err))
			return nil, nil, fmt.Errorf("scan item row: %w", err)
		}
		ref.ID = item.BookingID
		items = append(items, item)
		bookings[item.BookingID] = ref
	}

	return items, bookings, nil
}

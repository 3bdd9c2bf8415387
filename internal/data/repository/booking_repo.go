package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/engine"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateWithItems atomically re-checks availability and inserts the
	// booking with its items. On a collision it returns a ConflictError
	// carrying the winning booking id and leaves zero rows behind.
	CreateWithItems(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status engine.BookingStatus) error
	// ExpireOverdue lazily persists the pending -> expired transition.
	// Expiring an already-expired booking is a no-op.
	ExpireOverdue(ctx context.Context, bookingID uuid.UUID, now time.Time) (bool, error)
	SetImgBill(ctx context.Context, bookingID uuid.UUID, imgBill string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// IsConflict reports whether err is the exclusion (or unique) constraint
// violation raised when two transactions race for the same slots.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505")
}

// voidStatuses are the states whose items no longer occupy slots.
const voidStatuses = `'rejected', 'cancelled', 'expired'`

func (r *bookingRepository) CreateWithItems(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize against concurrent reserves touching the same
	// sub-court/date. Keys are locked in sorted order.
	for _, key := range lockKeys(items) {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
			return fmt.Errorf("lock %s: %w", key, err)
		}
	}

	// Lazily expire overdue pending bookings on these sub-court/dates so
	// their items stop blocking the overlap check and the exclusion
	// constraint.
	now := time.Now()
	for _, item := range items {
		if err := r.expireForDate(ctx, tx, item.SubCourtID, item.PlayDate, now); err != nil {
			return err
		}
	}

	// Re-check overlap under the lock; report the winner's id on conflict.
	for _, item := range items {
		var winner uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT i.booking_id
			FROM booking_items i
			INNER JOIN bookings b ON b.id = i.booking_id
			WHERE i.sub_court_id = $1 AND i.play_date = $2 AND i.active
			  AND i.start_minute < $4 AND $3 < i.end_minute
			  AND (b.status IN ('confirmed', 'locked', 'out_of_system')
			       OR (b.status = 'pending' AND b.expired_at > $5))
			LIMIT 1
		`, item.SubCourtID, item.PlayDate, item.StartMinute, item.EndMinute, now).Scan(&winner)
		if err == nil {
			return &engine.ConflictError{BookingID: winner}
		}
		if err != pgx.ErrNoRows {
			return fmt.Errorf("check availability for sub court %s: %w", item.SubCourtID.String(), err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, code, user_id, supper_court_id, status, total_price, img_bill, expired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		booking.ID,
		booking.Code,
		booking.UserID,
		booking.SupperCourtID,
		booking.Status,
		booking.TotalPrice,
		booking.ImgBill,
		booking.ExpiredAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("code", booking.Code),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Code, err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_items (id, booking_id, sub_court_id, play_date, start_minute, end_minute, price, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			item.ID,
			item.BookingID,
			item.SubCourtID,
			item.PlayDate,
			item.StartMinute,
			item.EndMinute,
			item.Price,
			item.Active,
			item.CreatedAt,
		)
		if err != nil {
			// Exclusion constraint backstop: a racing insert outside the
			// advisory lock path still cannot double-book.
			if IsConflict(err) {
				winner, lookupErr := r.findOverlapping(ctx, item)
				if lookupErr == nil && winner != uuid.Nil {
					return &engine.ConflictError{BookingID: winner}
				}
				return &engine.ConflictError{}
			}
			r.log.Error("Failed to create booking item",
				zap.Error(err),
				zap.String("booking_id", item.BookingID.String()),
				zap.String("sub_court_id", item.SubCourtID.String()),
			)
			return fmt.Errorf("create booking item for sub court %s: %w", item.SubCourtID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}

	return nil
}

func lockKeys(items []*entity.BookingItem) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, item := range items {
		key := fmt.Sprintf("booking:%s:%s", item.SubCourtID, item.PlayDate.Format(time.DateOnly))
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (r *bookingRepository) expireForDate(ctx context.Context, tx pgx.Tx, subCourtID uuid.UUID, playDate time.Time, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE bookings b
		SET status = 'expired', updated_at = $3
		WHERE b.status = 'pending' AND b.expired_at <= $3
		  AND EXISTS (
			SELECT 1 FROM booking_items i
			WHERE i.booking_id = b.id AND i.sub_court_id = $1 AND i.play_date = $2
		  )
	`, subCourtID, playDate, now)
	if err != nil {
		return fmt.Errorf("expire overdue bookings for sub court %s: %w", subCourtID.String(), err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE booking_items i
		SET active = false
		FROM bookings b
		WHERE b.id = i.booking_id AND i.active
		  AND i.sub_court_id = $1 AND i.play_date = $2
		  AND b.status IN (`+voidStatuses+`)
	`, subCourtID, playDate)
	if err != nil {
		return fmt.Errorf("release void booking items for sub court %s: %w", subCourtID.String(), err)
	}

	return nil
}

func (r *bookingRepository) findOverlapping(ctx context.Context, item *entity.BookingItem) (uuid.UUID, error) {
	var winner uuid.UUID
	err := r.db.QueryRow(ctx, `
		SELECT i.booking_id
		FROM booking_items i
		WHERE i.sub_court_id = $1 AND i.play_date = $2 AND i.active
		  AND i.start_minute < $4 AND $3 < i.end_minute
		LIMIT 1
	`, item.SubCourtID, item.PlayDate, item.StartMinute, item.EndMinute).Scan(&winner)
	if err == pgx.ErrNoRows {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("find overlapping booking: %w", err)
	}
	return winner, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, code, user_id, supper_court_id, status, total_price, img_bill, expired_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Code,
		&booking.UserID,
		&booking.SupperCourtID,
		&booking.Status,
		&booking.TotalPrice,
		&booking.ImgBill,
		&booking.ExpiredAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, code, user_id, supper_court_id, status, total_price, img_bill, expired_at, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.Code,
			&booking.UserID,
			&booking.SupperCourtID,
			&booking.Status,
			&booking.TotalPrice,
			&booking.ImgBill,
			&booking.ExpiredAt,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status engine.BookingStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin status tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}
	if result.RowsAffected() == 0 {
		return &engine.NotFoundError{Resource: "booking", ID: bookingID.String()}
	}

	// Items mirror whether the booking still holds its slots.
	occupies := status != engine.StatusRejected && status != engine.StatusCancelled && status != engine.StatusExpired
	_, err = tx.Exec(ctx, `UPDATE booking_items SET active = $2 WHERE booking_id = $1`, bookingID, occupies)
	if err != nil {
		return fmt.Errorf("update booking %s items: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit status tx: %w", err)
	}

	return nil
}

func (r *bookingRepository) ExpireOverdue(ctx context.Context, bookingID uuid.UUID, now time.Time) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin expire tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = 'expired', updated_at = $2
		WHERE id = $1 AND status = 'pending' AND expired_at <= $2
	`, bookingID, now)
	if err != nil {
		r.log.Error("Failed to expire booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("expire booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		// Already expired by a concurrent reader, or not due: no-op.
		return false, nil
	}

	if _, err := tx.Exec(ctx, `UPDATE booking_items SET active = false WHERE booking_id = $1`, bookingID); err != nil {
		return false, fmt.Errorf("release items of expired booking %s: %w", bookingID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit expire tx: %w", err)
	}

	return true, nil
}

func (r *bookingRepository) SetImgBill(ctx context.Context, bookingID uuid.UUID, imgBill string) error {
	result, err := r.db.Exec(ctx, `UPDATE bookings SET img_bill = $2, updated_at = NOW() WHERE id = $1`, bookingID, imgBill)
	if err != nil {
		r.log.Error("Failed to set booking bill image",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("set bill image for booking %s: %w", bookingID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return &engine.NotFoundError{Resource: "booking", ID: bookingID.String()}
	}

	return nil
}

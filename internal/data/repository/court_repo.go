package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SupperCourtRepository interface {
	Create(ctx context.Context, court *entity.SupperCourt) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SupperCourt, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.SupperCourt, error)
	Count(ctx context.Context) (int64, error)
}

type supperCourtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSupperCourtRepository(db database.PgxIface, log *zap.Logger) SupperCourtRepository {
	return &supperCourtRepository{
		db:  db,
		log: log.With(zap.String("repository", "supper_court")),
	}
}

func (r *supperCourtRepository) Create(ctx context.Context, court *entity.SupperCourt) error {
	query := `
		INSERT INTO supper_courts (id, owner_id, name, address, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		court.ID,
		court.OwnerID,
		court.Name,
		court.Address,
		court.Description,
		court.CreatedAt,
		court.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create supper court",
			zap.Error(err),
			zap.String("name", court.Name),
		)
		return fmt.Errorf("create supper court %s: %w", court.Name, err)
	}

	return nil
}

func (r *supperCourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SupperCourt, error) {
	query := `
		SELECT id, owner_id, name, address, description, created_at, updated_at
		FROM supper_courts
		WHERE id = $1
	`

	var court entity.SupperCourt
	err := r.db.QueryRow(ctx, query, id).Scan(
		&court.ID,
		&court.OwnerID,
		&court.Name,
		&court.Address,
		&court.Description,
		&court.CreatedAt,
		&court.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find supper court by ID",
			zap.Error(err),
			zap.String("supper_court_id", id.String()),
		)
		return nil, fmt.Errorf("find supper court by ID %s: %w", id.String(), err)
	}

	return &court, nil
}

func (r *supperCourtRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.SupperCourt, error) {
	query := `
		SELECT id, owner_id, name, address, description, created_at, updated_at
		FROM supper_courts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list supper courts",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list supper courts: %w", err)
	}
	defer rows.Close()

	var courts []*entity.SupperCourt
	for rows.Next() {
		var court entity.SupperCourt
		err := rows.Scan(
			&court.ID,
			&court.OwnerID,
			&court.Name,
			&court.Address,
			&court.Description,
			&court.CreatedAt,
			&court.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan supper court row", zap.Error(err))
			return nil, fmt.Errorf("scan supper court row: %w", err)
		}
		courts = append(courts, &court)
	}

	return courts, nil
}

func (r *supperCourtRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM supper_courts`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count supper courts", zap.Error(err))
		return 0, fmt.Errorf("count supper courts: %w", err)
	}

	return count, nil
}

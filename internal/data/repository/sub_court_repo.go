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

type SubCourtRepository interface {
	Create(ctx context.Context, subCourt *entity.SubCourt) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SubCourt, error)
	FindBySupperCourtID(ctx context.Context, supperCourtID uuid.UUID) ([]*entity.SubCourt, error)
}

type subCourtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubCourtRepository(db database.PgxIface, log *zap.Logger) SubCourtRepository {
	return &subCourtRepository{
		db:  db,
		log: log.With(zap.String("repository", "sub_court")),
	}
}

func (r *subCourtRepository) Create(ctx context.Context, subCourt *entity.SubCourt) error {
	query := `
		INSERT INTO sub_courts (id, supper_court_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		subCourt.ID,
		subCourt.SupperCourtID,
		subCourt.Name,
		subCourt.CreatedAt,
		subCourt.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create sub court",
			zap.Error(err),
			zap.String("supper_court_id", subCourt.SupperCourtID.String()),
			zap.String("name", subCourt.Name),
		)
		return fmt.Errorf("create sub court %s: %w", subCourt.Name, err)
	}

	return nil
}

func (r *subCourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubCourt, error) {
	query := `
		SELECT id, supper_court_id, name, created_at, updated_at
		FROM sub_courts
		WHERE id = $1
	`

	var subCourt entity.SubCourt
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subCourt.ID,
		&subCourt.SupperCourtID,
		&subCourt.Name,
		&subCourt.CreatedAt,
		&subCourt.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sub court by ID",
			zap.Error(err),
			zap.String("sub_court_id", id.String()),
		)
		return nil, fmt.Errorf("find sub court by ID %s: %w", id.String(), err)
	}

	return &subCourt, nil
}

func (r *subCourtRepository) FindBySupperCourtID(ctx context.Context, supperCourtID uuid.UUID) ([]*entity.SubCourt, error) {
	query := `
		SELECT id, supper_court_id, name, created_at, updated_at
		FROM sub_courts
		WHERE supper_court_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, supperCourtID)
	if err != nil {
		r.log.Error("Failed to find sub courts by supper court ID",
			zap.Error(err),
			zap.String("supper_court_id", supperCourtID.String()),
		)
		return nil, fmt.Errorf("find sub courts by supper court ID %s: %w", supperCourtID.String(), err)
	}
	defer rows.Close()

	var subCourts []*entity.SubCourt
	for rows.Next() {
		var subCourt entity.SubCourt
		err := rows.Scan(
			&subCourt.ID,
			&subCourt.SupperCourtID,
			&subCourt.Name,
			&subCourt.CreatedAt,
			&subCourt.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan sub court row", zap.Error(err))
			return nil, fmt.Errorf("scan sub court row: %w", err)
		}
		subCourts = append(subCourts, &subCourt)
	}

	return subCourts, nil
}

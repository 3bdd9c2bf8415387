package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/internal/engine"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PriceRuleRepository interface {
	// Create inserts a rule after verifying it does not overlap an existing
	// rule of the same scope; contradictory rules are rejected here with a
	// ConfigurationError instead of being resolved silently at query time.
	Create(ctx context.Context, rule *entity.PriceRule) error
	FindBySupperCourtID(ctx context.Context, supperCourtID uuid.UUID) ([]*entity.PriceRule, error)
}

type priceRuleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceRuleRepository(db database.PgxIface, log *zap.Logger) PriceRuleRepository {
	return &priceRuleRepository{
		db:  db,
		log: log.With(zap.String("repository", "price_rule")),
	}
}

func (r *priceRuleRepository) Create(ctx context.Context, rule *entity.PriceRule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin price rule tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize rule creation per supper court so two concurrent inserts
	// cannot both pass the overlap check.
	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended('price_rules:' || $1::text, 0))`,
		rule.SupperCourtID)
	if err != nil {
		return fmt.Errorf("lock price rules for supper court %s: %w", rule.SupperCourtID.String(), err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, supper_court_id, day_of_week, start_minute, end_minute, price_per_hour, created_at
		FROM price_rules
		WHERE supper_court_id = $1
	`, rule.SupperCourtID)
	if err != nil {
		return fmt.Errorf("load price rules for supper court %s: %w", rule.SupperCourtID.String(), err)
	}

	var existing []engine.PriceRule
	for rows.Next() {
		var er engine.PriceRule
		if err := rows.Scan(&er.ID, &er.SupperCourtID, &er.DayOfWeek, &er.StartMinute, &er.EndMinute, &er.PricePerHour, &er.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scan price rule row: %w", err)
		}
		existing = append(existing, er)
	}
	rows.Close()

	candidate := engine.PriceRule{
		ID:            rule.ID,
		SupperCourtID: rule.SupperCourtID,
		DayOfWeek:     rule.DayOfWeek,
		StartMinute:   rule.StartMinute,
		EndMinute:     rule.EndMinute,
		PricePerHour:  rule.PricePerHour,
		CreatedAt:     rule.CreatedAt,
	}
	if err := engine.CheckRuleOverlap(existing, candidate); err != nil {
		r.log.Warn("Rejected overlapping price rule",
			zap.Error(err),
			zap.String("supper_court_id", rule.SupperCourtID.String()),
		)
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO price_rules (id, supper_court_id, day_of_week, start_minute, end_minute, price_per_hour, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		rule.ID,
		rule.SupperCourtID,
		rule.DayOfWeek,
		rule.StartMinute,
		rule.EndMinute,
		rule.PricePerHour,
		rule.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create price rule",
			zap.Error(err),
			zap.String("supper_court_id", rule.SupperCourtID.String()),
		)
		return fmt.Errorf("create price rule for supper court %s: %w", rule.SupperCourtID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit price rule tx: %w", err)
	}

	return nil
}

func (r *priceRuleRepository) FindBySupperCourtID(ctx context.Context, supperCourtID uuid.UUID) ([]*entity.PriceRule, error) {
	query := `
		SELECT id, supper_court_id, day_of_week, start_minute, end_minute, price_per_hour, created_at
		FROM price_rules
		WHERE supper_court_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, supperCourtID)
	if err != nil {
		r.log.Error("Failed to find price rules by supper court ID",
			zap.Error(err),
			zap.String("supper_court_id", supperCourtID.String()),
		)
		return nil, fmt.Errorf("find price rules by supper court ID %s: %w", supperCourtID.String(), err)
	}
	defer rows.Close()

	var rules []*entity.PriceRule
	for rows.Next() {
		var rule entity.PriceRule
		err := rows.Scan(
			&rule.ID,
			&rule.SupperCourtID,
			&rule.DayOfWeek,
			&rule.StartMinute,
			&rule.EndMinute,
			&rule.PricePerHour,
			&rule.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan price rule row", zap.Error(err))
			return nil, fmt.Errorf("scan price rule row: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

package repository

import (
	"context"

	"spendlog/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

// buildUpsertQuery renders the single indivisible insert-or-update keyed
// on (user_id, month, year). Concurrent writers for the same period race
// on the unique constraint, never on a check-then-insert.
func buildUpsertQuery(b *models.MonthlyBudget) squirrel.InsertBuilder {
	return squirrel.Insert("monthly_budgets").
		Columns("id", "user_id", "month", "year", "amount", "created_at", "updated_at").
		Values(b.ID, b.UserID, b.Month, b.Year, b.Amount, b.CreatedAt, b.UpdatedAt).
		Suffix("ON CONFLICT (user_id, month, year) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()").
		Suffix("RETURNING id, user_id, month, year, amount, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)
}

// Upsert stores the budget for the period and returns the row in effect,
// keeping the original id when the period already had one.
func (r *BudgetRepository) Upsert(ctx context.Context, b *models.MonthlyBudget) (*models.MonthlyBudget, error) {
	sql, args, err := buildUpsertQuery(b).ToSql()
	if err != nil {
		return nil, err
	}

	var out models.MonthlyBudget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&out.ID, &out.UserID, &out.Month, &out.Year, &out.Amount, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &out, nil
}

func (r *BudgetRepository) Get(ctx context.Context, userID uuid.UUID, month, year int) (*models.MonthlyBudget, error) {
	query := squirrel.Select("id", "user_id", "month", "year", "amount", "created_at", "updated_at").
		From("monthly_budgets").
		Where(squirrel.Eq{"user_id": userID, "month": month, "year": year}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var b models.MonthlyBudget
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.UserID, &b.Month, &b.Year, &b.Amount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &b, nil
}

package repository

import (
	"context"

	"spendlog/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// AnalyticsRepository issues the aggregate queries behind the dashboard
// and the budget status. The four dashboard aggregates share one
// owner+range predicate but run as independent statements; the dashboard
// is not an atomic snapshot.
type AnalyticsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAnalyticsRepository(db *pgxpool.Pool, logger *zap.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: logger,
	}
}

func rangeWhere(query squirrel.SelectBuilder, userID uuid.UUID, from, to string) squirrel.SelectBuilder {
	return query.
		Where(squirrel.Eq{"user_id": userID}).
		Where("date >= ?", from).
		Where("date <= ?", to)
}

// TotalInRange sums the owner's expenses over the window, zero when
// nothing matches.
func (r *AnalyticsRepository) TotalInRange(ctx context.Context, userID uuid.UUID, from, to string) (float64, error) {
	query := rangeWhere(squirrel.Select("COALESCE(SUM(amount), 0)").From("expenses"), userID, from, to).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, mapError(err)
	}

	return total, nil
}

func (r *AnalyticsRepository) SumByCategory(ctx context.Context, userID uuid.UUID, from, to string) ([]models.CategoryTotal, error) {
	query := rangeWhere(squirrel.Select("category", "SUM(amount) AS total").From("expenses"), userID, from, to).
		GroupBy("category").
		OrderBy("total DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	totals := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var t models.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *AnalyticsRepository) SumByDay(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyTotal, error) {
	query := rangeWhere(squirrel.Select("date::text", "SUM(amount) AS total").From("expenses"), userID, from, to).
		GroupBy("date").
		OrderBy("date").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	totals := make([]models.DailyTotal, 0)
	for rows.Next() {
		var t models.DailyTotal
		if err := rows.Scan(&t.Date, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *AnalyticsRepository) SumByMonth(ctx context.Context, userID uuid.UUID, from, to string) ([]models.MonthlyTotal, error) {
	query := rangeWhere(
		squirrel.Select(
			"EXTRACT(MONTH FROM date)::int AS month",
			"EXTRACT(YEAR FROM date)::int AS year",
			"SUM(amount) AS total",
		).From("expenses"), userID, from, to).
		GroupBy("EXTRACT(MONTH FROM date)", "EXTRACT(YEAR FROM date)").
		OrderBy("year", "month").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	totals := make([]models.MonthlyTotal, 0)
	for rows.Next() {
		var t models.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Year, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

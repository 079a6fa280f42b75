package repository

import (
	"context"

	"spendlog/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

var expenseColumns = []string{"id", "user_id", "amount", "category", "description", "date::text", "created_at", "updated_at"}

// ExpenseFilter is the optional-filter input of the list query compiler.
// Zero values mean "filter not supplied".
type ExpenseFilter struct {
	UserID   uuid.UUID
	From     string
	To       string
	Category string
	Limit    int
	Offset   int
}

// ExpenseUpdate carries only the fields the caller supplied. A nil pointer
// leaves the column untouched; for the description, SetDescription with a
// nil value writes NULL.
type ExpenseUpdate struct {
	Amount         *float64
	Category       *string
	SetDescription bool
	Description    *string
	Date           *string
}

// Empty reports whether no field was supplied at all.
func (u ExpenseUpdate) Empty() bool {
	return u.Amount == nil && u.Category == nil && !u.SetDescription && u.Date == nil
}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("id", "user_id", "amount", "category", "description", "date", "created_at", "updated_at").
		Values(e.ID, e.UserID, e.Amount, e.Category, e.Description, e.Date, e.CreatedAt, e.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return mapError(err)
}

// buildListQuery compiles an optional filter set into one parameterized
// SELECT. The owner predicate always binds first; from/to/category follow
// in that order, one placeholder each; limit and offset are always the
// final two parameters.
func buildListQuery(f ExpenseFilter) squirrel.SelectBuilder {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": f.UserID})

	if f.From != "" {
		query = query.Where("date >= ?", f.From)
	}
	if f.To != "" {
		query = query.Where("date <= ?", f.To)
	}
	if f.Category != "" {
		query = query.Where(squirrel.Eq{"category": f.Category})
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	// Ordering by creation time second keeps pagination stable for rows
	// sharing a date.
	return query.
		OrderBy("date DESC", "created_at DESC").
		Suffix("LIMIT ? OFFSET ?", limit, offset).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *ExpenseRepository) List(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	sql, args, err := buildListQuery(f).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// GetByID looks a row up by id and owner together, so a row owned by
// someone else surfaces as ErrNotFound.
func (r *ExpenseRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &e, nil
}

// buildUpdateQuery compiles the supplied fields into an UPDATE touching
// only those columns. updated_at is always set alongside real field
// clauses; id and owner bind as the final two parameters.
func buildUpdateQuery(id, userID uuid.UUID, upd ExpenseUpdate) squirrel.UpdateBuilder {
	query := squirrel.Update("expenses")

	if upd.Amount != nil {
		query = query.Set("amount", *upd.Amount)
	}
	if upd.Category != nil {
		query = query.Set("category", *upd.Category)
	}
	if upd.SetDescription {
		query = query.Set("description", upd.Description)
	}
	if upd.Date != nil {
		query = query.Set("date", *upd.Date)
	}

	return query.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, user_id, amount, category, description, date::text, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)
}

// Update applies a partial update and returns the resulting row. A filter
// matching zero rows yields ErrNotFound. Callers are expected to handle
// the empty-update case themselves; see ExpenseUpdate.Empty.
func (r *ExpenseRepository) Update(ctx context.Context, id, userID uuid.UUID, upd ExpenseUpdate) (*models.Expense, error) {
	sql, args, err := buildUpdateQuery(id, userID, upd).ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

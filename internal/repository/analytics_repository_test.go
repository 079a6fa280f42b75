package repository

import (
	"testing"

	"spendlog/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeWherePredicateOrder(t *testing.T) {
	userID := uuid.New()

	sql, args, err := rangeWhere(
		squirrel.Select("COALESCE(SUM(amount), 0)").From("expenses"),
		userID, "2024-03-01", "2024-03-31",
	).PlaceholderFormat(squirrel.Dollar).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1 AND date >= $2 AND date <= $3",
		sql)
	assert.Equal(t, []interface{}{userID, "2024-03-01", "2024-03-31"}, args)
}

func TestBuildUpsertQuery(t *testing.T) {
	b := &models.MonthlyBudget{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Month:  3,
		Year:   2024,
		Amount: 1500,
	}

	sql, args, err := buildUpsertQuery(b).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO monthly_budgets (id,user_id,month,year,amount,created_at,updated_at) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7) "+
			"ON CONFLICT (user_id, month, year) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW() "+
			"RETURNING id, user_id, month, year, amount, created_at, updated_at",
		sql)
	require.Len(t, args, 7)
	assert.Equal(t, b.ID, args[0])
	assert.Equal(t, b.UserID, args[1])
	assert.Equal(t, 3, args[2])
	assert.Equal(t, 2024, args[3])
	assert.Equal(t, 1500.0, args[4])
}

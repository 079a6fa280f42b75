package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQueryAllFilters(t *testing.T) {
	userID := uuid.New()

	sql, args, err := buildListQuery(ExpenseFilter{
		UserID:   userID,
		From:     "2024-01-01",
		To:       "2024-03-31",
		Category: "Food",
		Limit:    50,
		Offset:   10,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, user_id, amount, category, description, date::text, created_at, updated_at "+
			"FROM expenses WHERE user_id = $1 AND date >= $2 AND date <= $3 AND category = $4 "+
			"ORDER BY date DESC, created_at DESC LIMIT $5 OFFSET $6",
		sql)
	assert.Equal(t, []interface{}{userID, "2024-01-01", "2024-03-31", "Food", 50, 10}, args)
}

func TestBuildListQueryOwnerOnly(t *testing.T) {
	userID := uuid.New()

	sql, args, err := buildListQuery(ExpenseFilter{UserID: userID}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, user_id, amount, category, description, date::text, created_at, updated_at "+
			"FROM expenses WHERE user_id = $1 "+
			"ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3",
		sql)
	assert.Equal(t, []interface{}{userID, 100, 0}, args)
}

func TestBuildListQueryParameterOrder(t *testing.T) {
	// Skipping "from" must not leave a gap: "to" takes the next index.
	userID := uuid.New()

	sql, args, err := buildListQuery(ExpenseFilter{
		UserID: userID,
		To:     "2024-06-30",
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "WHERE user_id = $1 AND date <= $2")
	assert.Contains(t, sql, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []interface{}{userID, "2024-06-30", 100, 0}, args)
}

func TestBuildListQueryLimitClamp(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"absent defaults", 0, 0, 100, 0},
		{"oversized clamps", 10000, 0, 500, 0},
		{"upper bound kept", 500, 0, 500, 0},
		{"negative defaults", -5, -3, 100, 0},
		{"in range passes", 42, 7, 42, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, args, err := buildListQuery(ExpenseFilter{
				UserID: uuid.New(),
				Limit:  tt.limit,
				Offset: tt.offset,
			}).ToSql()
			require.NoError(t, err)

			// limit and offset are always the final two parameters
			assert.Equal(t, tt.wantLimit, args[len(args)-2])
			assert.Equal(t, tt.wantOffset, args[len(args)-1])
		})
	}
}

func TestBuildUpdateQueryAllFields(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	amount := 25.50
	category := "Travel"
	description := "taxi to airport"
	date := "2024-05-01"

	sql, args, err := buildUpdateQuery(id, userID, ExpenseUpdate{
		Amount:         &amount,
		Category:       &category,
		SetDescription: true,
		Description:    &description,
		Date:           &date,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE expenses SET amount = $1, category = $2, description = $3, date = $4, updated_at = NOW() "+
			"WHERE id = $5 AND user_id = $6 "+
			"RETURNING id, user_id, amount, category, description, date::text, created_at, updated_at",
		sql)
	assert.Equal(t, []interface{}{amount, category, &description, date, id, userID}, args)
}

func TestBuildUpdateQuerySingleField(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	amount := 9.99

	sql, args, err := buildUpdateQuery(id, userID, ExpenseUpdate{Amount: &amount}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "SET amount = $1, updated_at = NOW()")
	assert.Contains(t, sql, "WHERE id = $2 AND user_id = $3")
	assert.Equal(t, []interface{}{amount, id, userID}, args)
}

func TestBuildUpdateQueryClearsDescription(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()

	sql, args, err := buildUpdateQuery(id, userID, ExpenseUpdate{
		SetDescription: true,
		Description:    nil,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "SET description = $1, updated_at = NOW()")
	assert.Equal(t, (*string)(nil), args[0])
}

func TestExpenseUpdateEmpty(t *testing.T) {
	assert.True(t, ExpenseUpdate{}.Empty())

	amount := 1.0
	assert.False(t, ExpenseUpdate{Amount: &amount}.Empty())
	assert.False(t, ExpenseUpdate{SetDescription: true}.Empty())
}

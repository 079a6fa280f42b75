package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is one spending record. Date carries a calendar day only,
// always in YYYY-MM-DD form.
type Expense struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Amount      float64   `db:"amount"`
	Category    string    `db:"category"`
	Description *string   `db:"description"`
	Date        string    `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CategoryTotal is one row of the per-category aggregate.
type CategoryTotal struct {
	Category string  `db:"category"`
	Total    float64 `db:"total"`
}

// DailyTotal is one row of the per-day aggregate.
type DailyTotal struct {
	Date  string  `db:"date"`
	Total float64 `db:"total"`
}

// MonthlyTotal is one row of the per-month aggregate.
type MonthlyTotal struct {
	Month int     `db:"month"`
	Year  int     `db:"year"`
	Total float64 `db:"total"`
}

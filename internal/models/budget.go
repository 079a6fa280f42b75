package models

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyBudget holds at most one row per (user, month, year),
// enforced by a unique constraint and upsert-on-conflict writes.
type MonthlyBudget struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Month     int       `db:"month"`
	Year      int       `db:"year"`
	Amount    float64   `db:"amount"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

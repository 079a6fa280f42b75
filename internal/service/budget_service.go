package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"spendlog/internal/dto"
	"spendlog/internal/models"
	"spendlog/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BudgetStore persists monthly budgets with upsert-on-conflict semantics.
type BudgetStore interface {
	Upsert(ctx context.Context, b *models.MonthlyBudget) (*models.MonthlyBudget, error)
	Get(ctx context.Context, userID uuid.UUID, month, year int) (*models.MonthlyBudget, error)
}

type BudgetService struct {
	budgets   BudgetStore
	analytics AnalyticsStore
	logger    *zap.Logger
}

func NewBudgetService(budgets BudgetStore, analytics AnalyticsStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets:   budgets,
		analytics: analytics,
		logger:    logger,
	}
}

// Set stores the budget for the period, overwriting any existing amount.
// Month and year default to the current period when zero.
func (s *BudgetService) Set(ctx context.Context, userID uuid.UUID, req *dto.SetBudgetRequest) (*dto.BudgetResponse, error) {
	month, year := defaultPeriod(time.Now(), req.Month, req.Year)

	now := time.Now()
	b, err := s.budgets.Upsert(ctx, &models.MonthlyBudget{
		ID:        uuid.New(),
		UserID:    userID,
		Month:     month,
		Year:      year,
		Amount:    math.Max(0, req.Amount),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	return &dto.BudgetResponse{
		ID:     b.ID.String(),
		Month:  b.Month,
		Year:   b.Year,
		Amount: b.Amount,
	}, nil
}

// Status reports spend-to-date against the configured budget for the
// period, current month by default. An unset budget reads as zero.
func (s *BudgetService) Status(ctx context.Context, userID uuid.UUID, month, year int) (*dto.BudgetStatusResponse, error) {
	month, year = defaultPeriod(time.Now(), month, year)

	var budgetAmount float64
	var budgetID string
	b, err := s.budgets.Get(ctx, userID, month, year)
	switch {
	case err == nil:
		budgetAmount = b.Amount
		budgetID = b.ID.String()
	case errors.Is(err, repository.ErrNotFound):
		// no budget configured for the period
	default:
		return nil, err
	}

	start, end := monthSpan(month, year)
	spent, err := s.analytics.TotalInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("spend in month: %w", err)
	}

	return &dto.BudgetStatusResponse{
		Month:          month,
		Year:           year,
		Budget:         budgetAmount,
		Spent:          round2(spent),
		Remaining:      round2(budgetAmount - spent),
		PercentageUsed: percentageUsed(spent, budgetAmount),
		BudgetID:       budgetID,
	}, nil
}

func defaultPeriod(now time.Time, month, year int) (int, int) {
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

// monthSpan resolves the exact first and last calendar day of the month.
func monthSpan(month, year int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

// percentageUsed is a display percentage at one-decimal precision,
// capped at 100 even when over budget, and 0 for a zero budget.
func percentageUsed(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	pct := math.Round(spent/budget*1000) / 10
	return math.Min(100, pct)
}

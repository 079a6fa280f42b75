package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"spendlog/internal/dto"
	"spendlog/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsStore issues the aggregate queries over one owner+range
// predicate.
type AnalyticsStore interface {
	TotalInRange(ctx context.Context, userID uuid.UUID, from, to string) (float64, error)
	SumByCategory(ctx context.Context, userID uuid.UUID, from, to string) ([]models.CategoryTotal, error)
	SumByDay(ctx context.Context, userID uuid.UUID, from, to string) ([]models.DailyTotal, error)
	SumByMonth(ctx context.Context, userID uuid.UUID, from, to string) ([]models.MonthlyTotal, error)
}

type AnalyticsService struct {
	analytics AnalyticsStore
	logger    *zap.Logger
}

func NewAnalyticsService(analytics AnalyticsStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		logger:    logger,
	}
}

// Dashboard computes the spending summary for one user over a date
// window. The four aggregates run sequentially without a transaction;
// slight skew under concurrent writes is acceptable for a reporting view.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uuid.UUID, from, to string) (*dto.DashboardResponse, error) {
	from, to = resolveWindow(time.Now(), from, to)

	total, err := s.analytics.TotalInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("total in range: %w", err)
	}

	byCategory, err := s.analytics.SumByCategory(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}

	byDay, err := s.analytics.SumByDay(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum by day: %w", err)
	}

	byMonth, err := s.analytics.SumByMonth(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum by month: %w", err)
	}

	avgDaily := total / float64(daysInclusive(from, to))

	highestCategory := "N/A"
	highestAmount := 0.0
	if len(byCategory) > 0 {
		highestCategory = byCategory[0].Category
		highestAmount = byCategory[0].Total
	}

	resp := &dto.DashboardResponse{
		TotalSpent:            round2(total),
		AverageDailySpend:     round2(avgDaily),
		HighestCategory:       highestCategory,
		HighestCategoryAmount: round2(highestAmount),
		ByCategory:            make([]dto.CategoryTotal, 0, len(byCategory)),
		SpendingOverTime:      make([]dto.DailyTotal, 0, len(byDay)),
		MonthlyComparison:     make([]dto.MonthlyTotal, 0, len(byMonth)),
		From:                  from,
		To:                    to,
	}

	for _, c := range byCategory {
		resp.ByCategory = append(resp.ByCategory, dto.CategoryTotal{Category: c.Category, Total: c.Total})
	}
	for _, d := range byDay {
		resp.SpendingOverTime = append(resp.SpendingOverTime, dto.DailyTotal{Date: d.Date, Total: d.Total})
	}
	for _, m := range byMonth {
		resp.MonthlyComparison = append(resp.MonthlyComparison, dto.MonthlyTotal{
			Month: m.Month,
			Year:  m.Year,
			Total: m.Total,
			Label: fmt.Sprintf("%d-%02d", m.Year, m.Month),
		})
	}

	return resp, nil
}

// resolveWindow fills missing bounds: to defaults to today, from to the
// first day of the current month.
func resolveWindow(now time.Time, from, to string) (string, string) {
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	return from, to
}

// daysInclusive counts calendar days between two YYYY-MM-DD bounds,
// inclusive, never below 1. Unparseable bounds also collapse to 1 so the
// average stays defined.
func daysInclusive(from, to string) int {
	fromT, errF := time.Parse("2006-01-02", from)
	toT, errT := time.Parse("2006-01-02", to)
	if errF != nil || errT != nil {
		return 1
	}

	days := int(toT.Sub(fromT).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// round2 rounds to cents, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package main

import (
	"context"
	"errors"
	"log"
	"time"

	"spendlog/internal/dto"
	"spendlog/internal/models"
	"spendlog/internal/repository"
	"spendlog/internal/service"
	"spendlog/pkg/auth"
	"spendlog/pkg/config"
	"spendlog/pkg/logger"
	"spendlog/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@spendlog.dev"
	demoPassword = "demo-password"
)

// seedExpense is one sample row, dated relative to today.
type seedExpense struct {
	daysAgo     int
	amount      float64
	category    string
	description string
}

var sampleExpenses = []seedExpense{
	{0, 12.40, "Food", "lunch"},
	{1, 54.90, "Food", "weekly groceries"},
	{1, 3.20, "Travel", "bus ticket"},
	{3, 18.00, "Entertainment", "cinema"},
	{5, 920.00, "Rent", "monthly rent"},
	{6, 67.30, "Shopping", "running shoes"},
	{8, 9.99, "Custom", "app subscription"},
	{12, 41.75, "Food", "dinner out"},
	{15, 26.00, "Travel", "train to the coast"},
	{21, 15.50, "Entertainment", "museum tickets"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	if err := postgres.Migrate(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	categories := models.NewCategorySet(cfg.Categories)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, categories, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, repository.NewAnalyticsRepository(db, appLogger), appLogger)

	appLogger.Info("Starting database seeding")

	userID, err := ensureDemoUser(ctx, authService, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	now := time.Now()
	for _, e := range sampleExpenses {
		_, err := expenseService.Create(ctx, userID, &dto.CreateExpenseRequest{
			Amount:      e.amount,
			Category:    e.category,
			Description: e.description,
			Date:        now.AddDate(0, 0, -e.daysAgo).Format("2006-01-02"),
		})
		if err != nil {
			appLogger.Fatal("Failed to seed expense", zap.Error(err))
		}
	}

	if _, err := budgetService.Set(ctx, userID, &dto.SetBudgetRequest{Amount: 1500}); err != nil {
		appLogger.Fatal("Failed to seed budget", zap.Error(err))
	}

	appLogger.Info("Database seeding completed",
		zap.String("email", demoEmail),
		zap.Int("expenses", len(sampleExpenses)),
	)
}

// ensureDemoUser registers the demo account, reusing it when seeding runs
// against an already-seeded database.
func ensureDemoUser(ctx context.Context, authService *service.AuthService, users *repository.UserRepository) (uuid.UUID, error) {
	resp, err := authService.Register(ctx, &dto.RegisterRequest{
		Email:    demoEmail,
		Password: demoPassword,
		Name:     "Demo User",
	})
	if err == nil {
		return uuid.Parse(resp.User.ID)
	}
	if !errors.Is(err, service.ErrEmailTaken) {
		return uuid.Nil, err
	}

	existing, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

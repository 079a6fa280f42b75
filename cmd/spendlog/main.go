package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spendlog/internal/api"
	"spendlog/internal/api/handlers"
	"spendlog/internal/models"
	"spendlog/internal/repository"
	"spendlog/internal/service"
	"spendlog/pkg/auth"
	"spendlog/pkg/config"
	"spendlog/pkg/logger"
	"spendlog/pkg/postgres"

	"go.uber.org/zap"
)

// @title Spendlog API
// @version 1.0
// @description Personal expense tracking: expenses, monthly budgets and spending analytics.

// @host localhost:4000
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting spendlog API")

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
	analyticsRepo := repository.NewAnalyticsRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	categories := models.NewCategorySet(cfg.Categories)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, categories, appLogger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, analyticsRepo, appLogger)

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, appLogger)

	app := api.SetupRouter(authHandler, expenseHandler, budgetHandler, analyticsHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

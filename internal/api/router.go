package api

import (
	"time"

	"spendlog/docs"
	"spendlog/internal/api/handlers"
	"spendlog/pkg/auth"
	"spendlog/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	budgetHandler *handlers.BudgetHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// importing docs registers the swagger document via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	authRequired := middleware.AuthMiddleware(jwtManager, appLogger)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authRequired, authHandler.Me)

	expenses := api.Group("/expenses", authRequired)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/categories", expenseHandler.Categories)
	expenses.Get("/:id", expenseHandler.Get)
	expenses.Post("/", expenseHandler.Create)
	expenses.Patch("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	budgets := api.Group("/budgets", authRequired)
	budgets.Get("/", budgetHandler.Status)
	budgets.Put("/", budgetHandler.Set)

	analytics := api.Group("/analytics", authRequired)
	analytics.Get("/", analyticsHandler.Dashboard)

	return app
}

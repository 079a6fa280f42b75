package handlers

import (
	"spendlog/internal/dto"
	"spendlog/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// Status godoc
// @Summary Budget status for a month
// @Description Spend-to-date against the configured budget; current month by default
// @Tags budgets
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Security Bearer
// @Success 200 {object} dto.BudgetStatusResponse
// @Failure 400 {object} map[string]string
// @Router /api/budgets [get]
func (h *BudgetHandler) Status(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	month := c.QueryInt("month", 0)
	year := c.QueryInt("year", 0)
	if !validPeriod(month, year) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid month or year",
		})
	}

	resp, err := h.budgetService.Status(c.Context(), userID, month, year)
	if err != nil {
		h.logger.Error("Failed to compute budget status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute budget status",
		})
	}

	return c.JSON(resp)
}

// Set godoc
// @Summary Set the budget for a month
// @Description Insert or overwrite the budget for the period; current month by default
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.SetBudgetRequest true "Budget"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Router /api/budgets [put]
func (h *BudgetHandler) Set(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.SetBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Amount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be non-negative",
		})
	}
	if !validPeriod(req.Month, req.Year) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid month or year",
		})
	}

	resp, err := h.budgetService.Set(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to set budget", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to set budget",
		})
	}

	return c.JSON(resp)
}

// validPeriod accepts zero values (meaning "current period") alongside a
// sane explicit month and year.
func validPeriod(month, year int) bool {
	if month < 0 || month > 12 {
		return false
	}
	if year != 0 && (year < 2000 || year > 2100) {
		return false
	}
	return true
}

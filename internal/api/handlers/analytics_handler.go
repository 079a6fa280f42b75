package handlers

import (
	"spendlog/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Dashboard godoc
// @Summary Spending dashboard
// @Description Aggregated spending for a window; defaults to the current month so far
// @Tags analytics
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string
// @Router /api/analytics [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	from := c.Query("from")
	to := c.Query("to")
	if !validDateParam(from) || !validDateParam(to) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Dates must be YYYY-MM-DD",
		})
	}

	resp, err := h.analyticsService.Dashboard(c.Context(), userID, from, to)
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build dashboard",
		})
	}

	return c.JSON(resp)
}

package handlers

import (
	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	txService      *service.TransactionService
	userService    *service.UserService
	insightService *service.InsightService
	logger         *zap.Logger
}

func NewDashboardHandler(
	txService *service.TransactionService,
	userService *service.UserService,
	insightService *service.InsightService,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		txService:      txService,
		userService:    userService,
		insightService: insightService,
		logger:         logger,
	}
}

// Snapshot godoc
// @Summary Synthetic dashboard snapshot
// @Description Returns the demo dataset bundle backing the dashboard and account widgets
// @Tags dashboard
// @Produce json
// @Success 200 {object} demo.Dataset
// @Router /api/v1/dashboard/snapshot [get]
func (h *DashboardHandler) Snapshot(c *fiber.Ctx) error {
	ds := h.txService.Snapshot()
	return c.JSON(fiber.Map{
		"accounts":         ds.Accounts,
		"items":            ds.Items,
		"transactions":     ds.Transactions,
		"kpis":             ds.KPIs,
		"topCategories":    ds.TopCategories,
		"totalBalance":     ds.TotalBalance,
		"netWorth":         ds.NetWorth,
		"dailyAverage":     ds.DailyAverage,
		"cumulativeSpend":  ds.Cumulative,
		"monthlySpend":     ds.Monthly,
		"activityGrid":     ds.ActivityGrid,
		"paymentChannels":  ds.Channels,
		"accountsInfo":     ds.AccountInfo,
		"dashboardSummary": h.insightService.DashboardSummary(c.Context(), ds),
	})
}

// GetDemoPreference godoc
// @Summary Read the user's demo-mode preference
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DemoPreferenceResponse
// @Router /api/v1/user/demo-mode [get]
func (h *DashboardHandler) GetDemoPreference(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(dto.DemoPreferenceResponse{DemoMode: nil, UserExists: false})
	}

	pref, err := h.userService.DemoPreference(c.Context(), userID)
	if err != nil {
		h.logger.Error("Could not read demo preference", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read preference",
		})
	}

	resp := dto.DemoPreferenceResponse{UserExists: true}
	switch pref {
	case models.DemoPreferenceDemo:
		v := true
		resp.DemoMode = &v
	case models.DemoPreferenceLive:
		v := false
		resp.DemoMode = &v
	}
	return c.JSON(resp)
}

// SetDemoPreference godoc
// @Summary Persist the user's demo-mode preference
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.DemoPreferenceRequest true "Preference"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/user/demo-mode [post]
func (h *DashboardHandler) SetDemoPreference(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.DemoPreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.userService.SetDemoPreference(c.Context(), userID, req.DemoMode); err != nil {
		h.logger.Error("Could not persist demo preference", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save preference",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"demoMode": req.DemoMode,
	})
}

package handlers

import (
	"context"

	"finsight/internal/dto"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

type getDataRequest struct {
	Filter *dto.TransactionFilter `json:"filter"`
}

// GetData godoc
// @Summary Fetch a filtered transaction page
// @Description Resolves the data source (demo or live) and runs the filter against it
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body getDataRequest true "Transaction filter"
// @Success 200 {object} dto.TransactionPage
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions/getData [post]
func (h *TransactionHandler) GetData(c *fiber.Ctx) error {
	var req getDataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON in request body",
		})
	}
	if req.Filter == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Filter is required",
		})
	}

	// Malformed bounds are a client error, rejected before the compiler.
	compiled, err := req.Filter.Compile()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	page, err := h.txService.ResolveAndFetch(sessionContext(c), compiled)
	if err != nil {
		h.logger.Error("Transaction fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch transactions",
		})
	}

	return c.JSON(page)
}

// sessionContext stamps the authenticated user, when present, onto the
// request context so the resolver's session collaborator can see it.
// Anonymous requests pass through: no session is a resolver input, not an
// authorization failure.
func sessionContext(c *fiber.Ctx) context.Context {
	ctx := c.Context()
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return ctx
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ctx
	}
	return service.WithUserID(ctx, userID)
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

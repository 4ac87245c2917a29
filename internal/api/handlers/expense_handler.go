package handlers

import (
	"errors"

	"finsight/internal/dto"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	provisioner    *service.ProvisionService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, provisioner *service.ProvisionService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		provisioner:    provisioner,
		logger:         logger,
	}
}

// Create godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateExpenseRequest true "Expense to record"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.provisioner.CheckUser(c.Context(), sessionToken(c))
	if err != nil {
		h.logger.Error("User provisioning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	expense, err := h.expenseService.Create(c.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) ||
			errors.Is(err, service.ErrInvalidDate) ||
			errors.Is(err, service.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to create expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(expense))
}

// List godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ExpenseResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	user, err := h.provisioner.CheckUser(c.Context(), sessionToken(c))
	if err != nil {
		h.logger.Error("User provisioning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	expenses, err := h.expenseService.List(c.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list expenses",
		})
	}

	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResponse(&expenses[i]))
	}

	return c.JSON(out)
}

package handlers

import (
	"strings"

	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InsightHandler struct {
	insightService *service.InsightService
	expenseService *service.ExpenseService
	provisioner    *service.ProvisionService
	logger         *zap.Logger
}

func NewInsightHandler(
	insightService *service.InsightService,
	expenseService *service.ExpenseService,
	provisioner *service.ProvisionService,
	logger *zap.Logger,
) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		expenseService: expenseService,
		provisioner:    provisioner,
		logger:         logger,
	}
}

// resolveUser provisions the application user for the current session.
// On failure the response is already written and ok is false.
func (h *InsightHandler) resolveUser(c *fiber.Ctx) (*models.User, bool) {
	user, err := h.provisioner.CheckUser(c.Context(), sessionToken(c))
	if err != nil {
		h.logger.Error("User provisioning failed", zap.Error(err))
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
		return nil, false
	}
	if user == nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
		return nil, false
	}
	return user, true
}

// loadExpenses maps inline expenses from the request, falling back to
// the user's stored expenses when none are supplied. On failure the
// response is already written and ok is false.
func (h *InsightHandler) loadExpenses(c *fiber.Ctx, user *models.User, inputs []dto.ExpenseInput) ([]models.Expense, bool) {
	if len(inputs) > 0 {
		expenses, err := toExpenses(inputs, user.ID)
		if err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Expense dates must be in YYYY-MM-DD format",
			})
			return nil, false
		}
		return expenses, true
	}

	expenses, err := h.expenseService.List(c.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to load stored expenses", zap.Error(err))
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load expenses",
		})
		return nil, false
	}
	return expenses, true
}

// Generate godoc
// @Summary Generate insights
// @Description Generate AI insights for the supplied or stored expenses
// @Tags insights
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.GenerateInsightsRequest true "Expenses to analyze"
// @Success 200 {object} dto.InsightListResponse
// @Failure 401 {object} map[string]string
// @Router /insights/generate [post]
func (h *InsightHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateInsightsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return nil
	}

	expenses, ok := h.loadExpenses(c, user, req.Expenses)
	if !ok {
		return nil
	}

	insights := h.insightService.GenerateExpenseInsights(c.Context(), user.ID, expenses)

	return c.JSON(dto.InsightListResponse{Insights: toInsightResponses(insights)})
}

// List godoc
// @Summary List stored insights
// @Description Return the last generated insight batch for the current user
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.InsightListResponse
// @Failure 401 {object} map[string]string
// @Router /insights [get]
func (h *InsightHandler) List(c *fiber.Ctx) error {
	user, ok := h.resolveUser(c)
	if !ok {
		return nil
	}

	insights, err := h.insightService.StoredInsights(c.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list insights", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list insights",
		})
	}

	return c.JSON(dto.InsightListResponse{Insights: toInsightResponses(insights)})
}

// Categorize godoc
// @Summary Categorize an expense description
// @Description Classify a free-text description into the fixed category set
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CategorizeRequest true "Description to classify"
// @Success 200 {object} dto.CategorizeResponse
// @Failure 400 {object} map[string]string
// @Router /expenses/categorize [post]
func (h *InsightHandler) Categorize(c *fiber.Ctx) error {
	var req dto.CategorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description is required",
		})
	}

	category := h.insightService.CategorizeExpense(c.Context(), req.Description)

	return c.JSON(dto.CategorizeResponse{Category: category})
}

// Ask godoc
// @Summary Ask about expenses
// @Description Answer a free-text question about the user's expense history
// @Tags assistant
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.AskRequest true "Question and optional expenses"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} map[string]string
// @Router /assistant/ask [post]
func (h *InsightHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return nil
	}

	expenses, ok := h.loadExpenses(c, user, req.Expenses)
	if !ok {
		return nil
	}

	answer := h.insightService.GenerateAIAnswer(c.Context(), req.Question, expenses)

	return c.JSON(dto.AskResponse{Answer: answer})
}

package handlers

import (
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func sessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals(middleware.SessionTokenKey).(string)
	return token
}

func toExpenses(inputs []dto.ExpenseInput, userID uuid.UUID) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0, len(inputs))
	for _, in := range inputs {
		date, err := time.Parse(models.ExpenseDateLayout, in.Date)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, models.Expense{
			ID:          uuid.New(),
			UserID:      userID,
			Amount:      in.Amount,
			Category:    in.Category,
			Description: in.Description,
			Date:        date,
		})
	}
	return expenses, nil
}

func toInsightResponses(insights []models.Insight) []dto.InsightResponse {
	out := make([]dto.InsightResponse, 0, len(insights))
	for _, i := range insights {
		out = append(out, dto.InsightResponse{
			ID:         i.ID,
			Type:       string(i.Type),
			Title:      i.Title,
			Message:    i.Message,
			Action:     i.Action,
			Confidence: i.Confidence,
		})
	}
	return out
}

func toExpenseResponse(e *models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.Format(models.ExpenseDateLayout),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

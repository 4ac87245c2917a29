package service

import (
	"context"
	"errors"
	"time"

	"finsight/internal/dto"
	"finsight/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCategory = errors.New("category is not in the allow-list")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidAmount   = errors.New("amount must be positive")
)

// ExpenseStore is the persistence surface for expenses.
type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Expense, error)
}

type ExpenseService struct {
	expenses ExpenseStore
	logger   *zap.Logger
}

func NewExpenseService(expenses ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		logger:   logger,
	}
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidExpenseCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	date, err := time.Parse(models.ExpenseDateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		CreatedAt:   time.Now(),
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	return s.expenses.ListByUser(ctx, userID)
}

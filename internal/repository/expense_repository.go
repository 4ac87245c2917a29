package repository

import (
	"context"

	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("id", "user_id", "amount", "category", "description", "date", "created_at").
		Values(expense.ID, expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date, expense.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) CreateBatch(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	builder := squirrel.Insert("expenses").
		Columns("id", "user_id", "amount", "category", "description", "date", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, expense := range expenses {
		builder = builder.Values(expense.ID, expense.UserID, expense.Amount, expense.Category, expense.Description, expense.Date, expense.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	query := squirrel.Select("id", "user_id", "amount", "category", "description", "date", "created_at").
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

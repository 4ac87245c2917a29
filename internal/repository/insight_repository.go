package repository

import (
	"context"

	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type InsightRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInsightRepository(db *pgxpool.Pool, logger *zap.Logger) *InsightRepository {
	return &InsightRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForUser swaps the user's stored insight batch for a fresh one.
// Insight ids repeat across generations ("fallback-1" in particular),
// so the previous batch is cleared first.
func (r *InsightRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, insights []models.Insight) error {
	deleteSQL, deleteArgs, err := squirrel.Delete("insights").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
		return err
	}

	if len(insights) == 0 {
		return nil
	}

	builder := squirrel.Insert("insights").
		Columns("id", "user_id", "type", "title", "message", "action", "confidence", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, insight := range insights {
		builder = builder.Values(insight.ID, userID, insight.Type, insight.Title, insight.Message, insight.Action, insight.Confidence, insight.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *InsightRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Insight, error) {
	query := squirrel.Select("id", "user_id", "type", "title", "message", "action", "confidence", "created_at").
		From("insights").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id").
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

	var insights []models.Insight
	for rows.Next() {
		var i models.Insight
		if err := rows.Scan(&i.ID, &i.UserID, &i.Type, &i.Title, &i.Message, &i.Action, &i.Confidence, &i.CreatedAt); err != nil {
			return nil, err
		}
		insights = append(insights, i)
	}

	return insights, rows.Err()
}

package repository

import (
	"context"

	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// upsertUserQuery builds the atomic insert-or-get statement. The
// conflict clause touches no user fields, so an existing row is
// returned unchanged; new identities are inserted in the same round
// trip, which closes the read-then-write race under concurrent
// first-time sign-ins.
func upsertUserQuery(user *models.User) (string, []interface{}, error) {
	return squirrel.Insert("users").
		Columns("id", "external_id", "email", "name", "image_url", "created_at", "updated_at").
		Values(user.ID, user.ExternalID, user.Email, user.Name, user.ImageURL, user.CreatedAt, user.UpdatedAt).
		Suffix(`ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
			RETURNING id, external_id, email, name, image_url, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// Upsert inserts the user if its external id is unseen, otherwise
// returns the existing record unchanged.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	sql, args, err := upsertUserQuery(user)
	if err != nil {
		return nil, err
	}

	var stored models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&stored.ID, &stored.ExternalID, &stored.Email, &stored.Name,
		&stored.ImageURL, &stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

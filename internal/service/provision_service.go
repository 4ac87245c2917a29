package service

import (
	"context"
	"time"

	"finsight/internal/models"
	"finsight/pkg/identity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionReader resolves a raw session token to the current
// identity-provider session, or nil when unauthenticated.
type SessionReader interface {
	CurrentSession(token string) *identity.Session
}

// UserStore is the persistence surface for provisioned users.
type UserStore interface {
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
}

// ProvisionService lazily creates the application user record backing
// an identity-provider session.
type ProvisionService struct {
	sessions SessionReader
	users    UserStore
	logger   *zap.Logger
}

func NewProvisionService(sessions SessionReader, users UserStore, logger *zap.Logger) *ProvisionService {
	return &ProvisionService{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// CheckUser resolves the session token to an application user,
// creating the record on first sight of the external identity.
// Returns (nil, nil) when there is no valid session. Existing users
// are returned unchanged; the insert-or-get is a single atomic
// statement, so concurrent first sign-ins of one identity cannot
// create duplicates. Database errors propagate to the caller.
func (s *ProvisionService) CheckUser(ctx context.Context, sessionToken string) (*models.User, error) {
	session := s.sessions.CurrentSession(sessionToken)
	if session == nil {
		return nil, nil
	}

	now := time.Now()
	user, err := s.users.Upsert(ctx, &models.User{
		ID:         uuid.New(),
		ExternalID: session.ExternalID,
		Email:      session.Email,
		Name:       session.FullName(),
		ImageURL:   session.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if user.CreatedAt.Equal(now) {
		s.logger.Info("Provisioned new user",
			zap.String("external_id", user.ExternalID),
			zap.String("user_id", user.ID.String()),
		)
	}

	return user, nil
}

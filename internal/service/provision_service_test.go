package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"finsight/internal/models"
	"finsight/pkg/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSessions maps tokens to sessions; unknown tokens resolve to nil.
type stubSessions struct {
	sessions map[string]*identity.Session
}

func (s *stubSessions) CurrentSession(token string) *identity.Session {
	return s.sessions[token]
}

// stubUserStore emulates the atomic insert-or-get on external_id.
type stubUserStore struct {
	byExternalID map[string]*models.User
	upsertErr    error
	upserts      int
}

func (s *stubUserStore) Upsert(_ context.Context, user *models.User) (*models.User, error) {
	s.upserts++
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	if existing, ok := s.byExternalID[user.ExternalID]; ok {
		return existing, nil
	}
	if s.byExternalID == nil {
		s.byExternalID = make(map[string]*models.User)
	}
	s.byExternalID[user.ExternalID] = user
	return user, nil
}

func TestCheckUser(t *testing.T) {
	session := &identity.Session{
		ExternalID: "ext-123",
		Email:      "jo@example.com",
		FirstName:  "Jo",
		LastName:   "Smith",
		ImageURL:   "https://example.com/jo.png",
	}

	t.Run("no session returns nil without touching the store", func(t *testing.T) {
		store := &stubUserStore{}
		svc := NewProvisionService(&stubSessions{}, store, zap.NewNop())

		user, err := svc.CheckUser(context.Background(), "garbage-token")

		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Zero(t, store.upserts)
	})

	t.Run("first sight creates user with derived fields", func(t *testing.T) {
		sessions := &stubSessions{sessions: map[string]*identity.Session{"tok": session}}
		store := &stubUserStore{}
		svc := NewProvisionService(sessions, store, zap.NewNop())

		user, err := svc.CheckUser(context.Background(), "tok")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "ext-123", user.ExternalID)
		assert.Equal(t, "jo@example.com", user.Email)
		assert.Equal(t, "Jo Smith", user.Name)
		assert.Equal(t, "https://example.com/jo.png", user.ImageURL)
		assert.NotEqual(t, uuid.Nil, user.ID)
	})

	t.Run("existing user is returned unchanged", func(t *testing.T) {
		existing := &models.User{
			ID:         uuid.New(),
			ExternalID: "ext-123",
			Email:      "old@example.com",
			Name:       "Old Name",
			CreatedAt:  time.Now().Add(-time.Hour),
		}
		sessions := &stubSessions{sessions: map[string]*identity.Session{"tok": session}}
		store := &stubUserStore{byExternalID: map[string]*models.User{"ext-123": existing}}
		svc := NewProvisionService(sessions, store, zap.NewNop())

		user, err := svc.CheckUser(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, existing, user)
	})

	t.Run("repeated calls are idempotent", func(t *testing.T) {
		sessions := &stubSessions{sessions: map[string]*identity.Session{"tok": session}}
		store := &stubUserStore{}
		svc := NewProvisionService(sessions, store, zap.NewNop())

		first, err := svc.CheckUser(context.Background(), "tok")
		require.NoError(t, err)
		second, err := svc.CheckUser(context.Background(), "tok")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 2, store.upserts)
	})

	t.Run("database errors propagate", func(t *testing.T) {
		sessions := &stubSessions{sessions: map[string]*identity.Session{"tok": session}}
		store := &stubUserStore{upsertErr: errors.New("unique violation")}
		svc := NewProvisionService(sessions, store, zap.NewNop())

		user, err := svc.CheckUser(context.Background(), "tok")

		require.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("single name sessions have no trailing space", func(t *testing.T) {
		solo := &identity.Session{ExternalID: "ext-9", FirstName: "Cher"}
		sessions := &stubSessions{sessions: map[string]*identity.Session{"tok": solo}}
		svc := NewProvisionService(sessions, &stubUserStore{}, zap.NewNop())

		user, err := svc.CheckUser(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, "Cher", user.Name)
	})
}

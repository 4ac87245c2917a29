package repository

import (
	"testing"
	"time"

	"finsight/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertUserQuery(t *testing.T) {
	now := time.Now()
	user := &models.User{
		ID:         uuid.New(),
		ExternalID: "ext-1",
		Email:      "a@example.com",
		Name:       "A",
		ImageURL:   "https://example.com/a.png",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	sql, args, err := upsertUserQuery(user)
	require.NoError(t, err)

	// A single atomic statement: conflict on the unique external id
	// returns the existing row instead of failing.
	assert.Contains(t, sql, "INSERT INTO users")
	assert.Contains(t, sql, "ON CONFLICT (external_id)")
	assert.Contains(t, sql, "RETURNING")
	assert.Len(t, args, 7)
	assert.Equal(t, "ext-1", args[1])
}

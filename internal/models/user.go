package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the application-level user record provisioned from an
// identity-provider session. ExternalID is the provider's user id and
// is the unique key; everything else is derived from session claims at
// first sight.
type User struct {
	ID         uuid.UUID `db:"id"`
	ExternalID string    `db:"external_id"`
	Email      string    `db:"email"`
	Name       string    `db:"name"`
	ImageURL   string    `db:"image_url"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

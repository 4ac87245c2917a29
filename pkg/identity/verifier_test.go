package identity

import (
	"testing"
	"time"

	"finsight/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier() *Verifier {
	return NewVerifier(&config.IdentityConfig{
		SecretKey: "test-secret",
		Issuer:    "finsight-identity",
	})
}

func TestCurrentSession(t *testing.T) {
	verifier := newTestVerifier()
	session := &Session{
		ExternalID: "ext-42",
		Email:      "ada@example.com",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		ImageURL:   "https://example.com/ada.png",
	}

	t.Run("roundtrip", func(t *testing.T) {
		token, err := verifier.Issue(session, time.Hour)
		require.NoError(t, err)

		got := verifier.CurrentSession(token)
		require.NotNil(t, got)
		assert.Equal(t, session, got)
	})

	t.Run("empty token", func(t *testing.T) {
		assert.Nil(t, verifier.CurrentSession(""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Nil(t, verifier.CurrentSession("not.a.jwt"))
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := verifier.Issue(session, -time.Minute)
		require.NoError(t, err)

		assert.Nil(t, verifier.CurrentSession(token))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewVerifier(&config.IdentityConfig{SecretKey: "other-secret", Issuer: "finsight-identity"})
		token, err := other.Issue(session, time.Hour)
		require.NoError(t, err)

		assert.Nil(t, verifier.CurrentSession(token))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewVerifier(&config.IdentityConfig{SecretKey: "test-secret", Issuer: "someone-else"})
		token, err := other.Issue(session, time.Hour)
		require.NoError(t, err)

		assert.Nil(t, verifier.CurrentSession(token))
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := verifier.Issue(&Session{Email: "anon@example.com"}, time.Hour)
		require.NoError(t, err)

		assert.Nil(t, verifier.CurrentSession(token))
	})
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Jo", "Smith", "Jo Smith"},
		{"Cher", "", "Cher"},
		{"", "Smith", "Smith"},
		{"", "", ""},
	}

	for _, tt := range tests {
		s := &Session{FirstName: tt.first, LastName: tt.last}
		assert.Equal(t, tt.want, s.FullName())
	}
}

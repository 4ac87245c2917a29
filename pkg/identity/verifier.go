package identity

import (
	"fmt"
	"strings"
	"time"

	"finsight/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated identity-provider session visible to the
// application. ExternalID is the provider's stable user id.
type Session struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	ImageURL   string
}

// FullName concatenates the session's first and last names.
func (s *Session) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

type sessionClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
	jwt.RegisteredClaims
}

// Verifier validates identity-provider session tokens. Tokens are HS256
// JWTs signed with the shared provider secret.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(cfg *config.IdentityConfig) *Verifier {
	return &Verifier{
		secret: []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
	}
}

// CurrentSession returns the session encoded in token, or nil when the
// token is empty, malformed, expired, or fails signature verification.
// An absent session means the request is unauthenticated; it is never
// an error.
func (v *Verifier) CurrentSession(token string) *Session {
	if token == "" {
		return nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil
	}

	return &Session{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		ImageURL:   claims.ImageURL,
	}
}

// Issue signs a session token for the given session. Used by local
// tooling and tests; in production tokens come from the identity
// provider itself.
func (v *Verifier) Issue(session *Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Email:     session.Email,
		FirstName: session.FirstName,
		LastName:  session.LastName,
		ImageURL:  session.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ExternalID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

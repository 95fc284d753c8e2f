package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omoide-app/backend/internal/apperr"
)

// Identity is the per-request auth context derived from a verified token.
// It is never persisted.
type Identity struct {
	UserID string
	IsDemo bool
}

type claims struct {
	jwt.RegisteredClaims
	Demo bool `json:"demo"`
}

// TokenManager issues and verifies signed identity assertions. The secret
// is injected at construction and read-only afterwards, so verification
// needs no store access.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token carrying the user id and tier. No expiry is set;
// callers wanting one can layer it on top of the recorded issue time.
func (t *TokenManager) Issue(userID string, isDemo bool) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Demo: isDemo,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

// Verify checks the signature and structure of a token and returns the
// identity it asserts. Any failure is apperr.ErrInvalidToken.
func (t *TokenManager) Verify(token string) (Identity, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || c.Subject == "" {
		return Identity{}, apperr.ErrInvalidToken
	}
	return Identity{UserID: c.Subject, IsDemo: c.Demo}, nil
}

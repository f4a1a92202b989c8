package token

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"simpleq/contexts/identity-access/session-service/domain/entities"
	domainerrors "simpleq/contexts/identity-access/session-service/domain/errors"
)

// Claims carried by tokenized sessions.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// Verifier checks HS256 tokenized sessions. A zero secret disables it.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) Verifier {
	return Verifier{secret: []byte(strings.TrimSpace(secret))}
}

// Verify returns ok=false when the token is not a JWT or verification is
// disabled, so the caller can fall back to the session provider.
func (v Verifier) Verify(raw string) (entities.Session, bool, error) {
	if len(v.secret) == 0 || strings.Count(raw, ".") != 2 {
		return entities.Session{}, false, nil
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return entities.Session{}, true, fmt.Errorf("%w: %w", domainerrors.ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return entities.Session{}, true, fmt.Errorf("%w: missing subject", domainerrors.ErrInvalidToken)
	}
	return entities.Session{
		IdentityID: claims.Subject,
		Email:      claims.Email,
		Username:   claims.Username,
		Active:     true,
	}, true, nil
}

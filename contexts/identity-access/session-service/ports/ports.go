package ports

import (
	"context"
	"time"

	"simpleq/contexts/identity-access/session-service/domain/entities"
)

// SessionProvider looks up the session behind browser cookies or a session
// token. found is false for anonymous credentials.
type SessionProvider interface {
	WhoAmI(ctx context.Context, credentials entities.Credentials) (entities.Session, bool, error)
	LogoutURL(ctx context.Context, cookie string) (string, error)
}

// TokenVerifier validates tokenized sessions without a provider round trip.
// ok is false when the token is not in the tokenized format at all.
type TokenVerifier interface {
	Verify(token string) (session entities.Session, ok bool, err error)
}

type SessionCache interface {
	Get(key string, now time.Time) (entities.Session, bool)
	Put(key string, session entities.Session, expiresAt time.Time)
}

type Clock interface {
	Now() time.Time
}

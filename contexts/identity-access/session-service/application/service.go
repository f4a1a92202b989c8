package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"simpleq/contexts/identity-access/session-service/domain/entities"
	domainerrors "simpleq/contexts/identity-access/session-service/domain/errors"
	"simpleq/contexts/identity-access/session-service/ports"
)

type Service struct {
	Provider ports.SessionProvider
	Tokens   ports.TokenVerifier
	Cache    ports.SessionCache
	Clock    ports.Clock
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Resolve returns the active session for the credentials. found is false for
// anonymous callers and for sessions the provider rejects.
func (s Service) Resolve(ctx context.Context, credentials entities.Credentials) (entities.Session, bool, error) {
	if credentials.Empty() {
		return entities.Session{}, false, nil
	}
	if credentials.BearerToken != "" && s.Tokens != nil {
		session, ok, err := s.Tokens.Verify(credentials.BearerToken)
		if ok {
			if err != nil {
				ResolveLogger(s.Logger).Debug("tokenized session rejected",
					"event", "session_token_rejected",
					"module", "identity-access/session-service",
					"layer", "application",
					"error", err.Error(),
				)
				return entities.Session{}, false, nil
			}
			return session, session.Active, nil
		}
		if credentials.SessionToken == "" {
			credentials.SessionToken = credentials.BearerToken
		}
	}

	key := cacheKey(credentials)
	now := s.now()
	if s.Cache != nil {
		if session, ok := s.Cache.Get(key, now); ok {
			return session, true, nil
		}
	}

	session, found, err := s.Provider.WhoAmI(ctx, credentials)
	if err != nil {
		ResolveLogger(s.Logger).Error("session lookup failed",
			"event", "session_lookup_failed",
			"module", "identity-access/session-service",
			"layer", "application",
			"error", err.Error(),
		)
		if errors.Is(err, domainerrors.ErrIdentityUnavailable) {
			return entities.Session{}, false, err
		}
		return entities.Session{}, false, errors.Join(domainerrors.ErrIdentityUnavailable, err)
	}
	if !found || !session.Active || session.IdentityID == "" {
		return entities.Session{}, false, nil
	}
	if s.Cache != nil && s.CacheTTL > 0 {
		s.Cache.Put(key, session, now.Add(s.CacheTTL))
	}
	return session, true, nil
}

// LogoutURL returns the provider URL that ends the browser session.
func (s Service) LogoutURL(ctx context.Context, cookie string) (string, error) {
	if cookie == "" {
		return "", domainerrors.ErrUnauthenticated
	}
	return s.Provider.LogoutURL(ctx, cookie)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func cacheKey(credentials entities.Credentials) string {
	sum := sha256.Sum256([]byte(credentials.Cookie + "\x00" + credentials.SessionToken))
	return hex.EncodeToString(sum[:])
}

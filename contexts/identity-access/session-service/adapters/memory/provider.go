package memory

import (
	"context"
	"strings"
	"sync"

	"simpleq/contexts/identity-access/session-service/domain/entities"
	domainerrors "simpleq/contexts/identity-access/session-service/domain/errors"
)

// Provider serves sessions registered by token or cookie value.
type Provider struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session
}

func NewProvider() *Provider {
	return &Provider{sessions: make(map[string]entities.Session)}
}

// Register makes credential resolve to session. credential is matched
// against the session token and the raw cookie header.
func (p *Provider) Register(credential string, session entities.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[credential] = session
}

func (p *Provider) WhoAmI(_ context.Context, credentials entities.Credentials) (entities.Session, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, key := range []string{credentials.SessionToken, credentials.Cookie} {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if session, ok := p.sessions[key]; ok {
			return session, true, nil
		}
	}
	return entities.Session{}, false, nil
}

func (p *Provider) LogoutURL(_ context.Context, cookie string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.sessions[strings.TrimSpace(cookie)]; !ok {
		return "", domainerrors.ErrUnauthenticated
	}
	return "/self-service/logout?cookie=" + cookieName(cookie), nil
}

func cookieName(cookie string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(cookie), "=")
	return name
}

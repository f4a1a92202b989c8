package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"simpleq/contexts/identity-access/session-service/adapters/memory"
	"simpleq/contexts/identity-access/session-service/domain/entities"
	domainerrors "simpleq/contexts/identity-access/session-service/domain/errors"
)

type fakeProvider struct {
	session entities.Session
	found   bool
	err     error
	calls   int
	last    entities.Credentials
}

func (f *fakeProvider) WhoAmI(_ context.Context, credentials entities.Credentials) (entities.Session, bool, error) {
	f.calls++
	f.last = credentials
	return f.session, f.found, f.err
}

func (f *fakeProvider) LogoutURL(context.Context, string) (string, error) {
	return "http://ory/logout", nil
}

type fakeTokens struct {
	session entities.Session
	ok      bool
	err     error
}

func (f fakeTokens) Verify(string) (entities.Session, bool, error) {
	return f.session, f.ok, f.err
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func TestResolveCachesProviderSessions(t *testing.T) {
	provider := &fakeProvider{
		session: entities.Session{IdentityID: "id-1", Email: "ada@example.com", Active: true},
		found:   true,
	}
	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := Service{Provider: provider, Cache: memory.NewCache(), Clock: clock, CacheTTL: time.Minute}
	creds := entities.Credentials{Cookie: "ory_session=abc"}

	for i := 0; i < 3; i++ {
		session, found, err := svc.Resolve(context.Background(), creds)
		if err != nil || !found || session.IdentityID != "id-1" {
			t.Fatalf("resolve %d: session=%+v found=%v err=%v", i, session, found, err)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}

	clock.now = clock.now.Add(2 * time.Minute)
	if _, _, err := svc.Resolve(context.Background(), creds); err != nil {
		t.Fatalf("resolve after expiry: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("expected cache expiry to refetch, got %d calls", provider.calls)
	}
}

func TestResolveAnonymous(t *testing.T) {
	provider := &fakeProvider{}
	svc := Service{Provider: provider}
	if _, found, err := svc.Resolve(context.Background(), entities.Credentials{}); found || err != nil {
		t.Fatalf("empty credentials must be anonymous, found=%v err=%v", found, err)
	}
	if provider.calls != 0 {
		t.Fatal("provider must not be called without credentials")
	}

	provider.found = true
	provider.session = entities.Session{IdentityID: "id-1", Active: false}
	if _, found, _ := svc.Resolve(context.Background(), entities.Credentials{Cookie: "c"}); found {
		t.Fatal("inactive session must be anonymous")
	}
}

func TestResolveProviderFailure(t *testing.T) {
	svc := Service{Provider: &fakeProvider{err: errors.New("connection refused")}}
	_, _, err := svc.Resolve(context.Background(), entities.Credentials{Cookie: "c"})
	if !errors.Is(err, domainerrors.ErrIdentityUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestResolveBearerTokens(t *testing.T) {
	provider := &fakeProvider{session: entities.Session{IdentityID: "from-ory", Active: true}, found: true}

	svc := Service{Provider: provider, Tokens: fakeTokens{session: entities.Session{IdentityID: "from-jwt", Active: true}, ok: true}}
	session, found, err := svc.Resolve(context.Background(), entities.Credentials{BearerToken: "a.b.c"})
	if err != nil || !found || session.IdentityID != "from-jwt" {
		t.Fatalf("unexpected jwt resolution %+v found=%v err=%v", session, found, err)
	}

	svc.Tokens = fakeTokens{ok: true, err: domainerrors.ErrInvalidToken}
	if _, found, err := svc.Resolve(context.Background(), entities.Credentials{BearerToken: "a.b.c"}); found || err != nil {
		t.Fatalf("invalid token must be anonymous, found=%v err=%v", found, err)
	}

	svc.Tokens = fakeTokens{}
	session, found, _ = svc.Resolve(context.Background(), entities.Credentials{BearerToken: "ory_st_opaque"})
	if !found || session.IdentityID != "from-ory" {
		t.Fatalf("opaque bearer should go to the provider, got %+v", session)
	}
	if provider.last.SessionToken != "ory_st_opaque" {
		t.Fatalf("bearer token not forwarded as session token: %+v", provider.last)
	}
}

func TestLogoutURLRequiresCookie(t *testing.T) {
	svc := Service{Provider: &fakeProvider{}}
	if _, err := svc.LogoutURL(context.Background(), ""); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if got, err := svc.LogoutURL(context.Background(), "c"); err != nil || got != "http://ory/logout" {
		t.Fatalf("unexpected logout url %q err=%v", got, err)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	cases := map[string]entities.Session{
		"ada@example.com": {Email: "ada@example.com", Username: "ada"},
		"ada":             {Username: "ada"},
		"Unknown":         {},
	}
	for want, session := range cases {
		if got := session.DisplayName(); got != want {
			t.Fatalf("DisplayName() = %q, want %q", got, want)
		}
	}
}

// Package requestctx carries the resolved caller identity through request
// handling.
package requestctx

import "context"

type identityContextKey struct{}

// Identity is the authenticated caller as resolved by the session middleware.
type Identity struct {
	ID          string
	DisplayName string
	Admin       bool
}

// WithIdentity stores the caller identity in context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the caller identity and whether one is present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	if !ok || identity.ID == "" {
		return Identity{}, false
	}
	return identity, true
}

// UserIDFromContext returns the caller identity id, or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	identity, _ := IdentityFromContext(ctx)
	return identity.ID
}

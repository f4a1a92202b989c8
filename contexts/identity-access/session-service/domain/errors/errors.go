package errors

import "errors"

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
	ErrInvalidToken        = errors.New("invalid session token")
)

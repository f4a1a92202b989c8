package errors

import "errors"

var (
	ErrUnauthenticated       = errors.New("an authenticated identity is required")
	ErrProviderNotConfigured = errors.New("external provider is not configured")
	ErrUpstreamFailed        = errors.New("external provider request failed")
)

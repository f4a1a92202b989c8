package errors

import "errors"

var (
	ErrInvalidName   = errors.New("blacklist name is required")
	ErrAlreadyExists = errors.New("blacklist item already exists")
	ErrForbidden     = errors.New("blacklist changes require an admin identity")
)

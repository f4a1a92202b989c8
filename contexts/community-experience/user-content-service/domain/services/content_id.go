package services

import (
	"strings"

	"github.com/google/uuid"

	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
)

// ValidateContentID returns the canonical form of a uuid content id.
func ValidateContentID(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", domainerrors.ErrInvalidContentID
	}
	return parsed.String(), nil
}

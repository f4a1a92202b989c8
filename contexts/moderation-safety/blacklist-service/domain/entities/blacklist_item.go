package entities

import (
	"strings"
	"time"

	domainerrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"
)

type BlacklistItem struct {
	Name      string
	CreatedAt time.Time
}

// NormalizeName trims and lower-cases a blacklist name. Names are unique
// case-insensitively.
func NormalizeName(raw string) (string, error) {
	name := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if name == "" {
		return "", domainerrors.ErrInvalidName
	}
	return name, nil
}

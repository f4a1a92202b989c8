package ports

import (
	"context"
	"time"

	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
)

// Repository persists blacklist items keyed by normalized name.
type Repository interface {
	CreateItem(ctx context.Context, item entities.BlacklistItem) error
	// GetItem reports found=false when the name is not blacklisted.
	GetItem(ctx context.Context, name string) (entities.BlacklistItem, bool, error)
	ListItems(ctx context.Context) ([]entities.BlacklistItem, error)
}

type Clock interface {
	Now() time.Time
}

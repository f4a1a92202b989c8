package application

import (
	"context"
	"log/slog"
	"time"

	"simpleq/contexts/moderation-safety/blacklist-service/domain/entities"
	"simpleq/contexts/moderation-safety/blacklist-service/domain/services"
	"simpleq/contexts/moderation-safety/blacklist-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) CreateBlacklistItem(ctx context.Context, rawName string) (entities.BlacklistItem, error) {
	logger := ResolveLogger(s.Logger)
	name, err := entities.NormalizeName(rawName)
	if err != nil {
		return entities.BlacklistItem{}, err
	}

	item := entities.BlacklistItem{
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		logger.Warn("create blacklist item failed",
			"event", "blacklist_item_create_failed",
			"module", "moderation-safety/blacklist-service",
			"layer", "application",
			"name", name,
			"error", err.Error(),
		)
		return entities.BlacklistItem{}, err
	}

	logger.Info("blacklist item created",
		"event", "blacklist_item_created",
		"module", "moderation-safety/blacklist-service",
		"layer", "application",
		"name", name,
	)
	return item, nil
}

// GetBlacklistItem returns found=false for names that are not blacklisted.
// Blank names are never blacklisted.
func (s Service) GetBlacklistItem(ctx context.Context, rawName string) (entities.BlacklistItem, bool, error) {
	name, err := entities.NormalizeName(rawName)
	if err != nil {
		return entities.BlacklistItem{}, false, nil
	}
	return s.Repo.GetItem(ctx, name)
}

func (s Service) GetAllBlacklistItems(ctx context.Context) ([]entities.BlacklistItem, error) {
	return s.Repo.ListItems(ctx)
}

// ScreenText returns the blacklisted names found in texts.
func (s Service) ScreenText(ctx context.Context, texts ...string) ([]string, error) {
	items, err := s.Repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	matched := services.MatchBlacklisted(items, texts...)
	if len(matched) > 0 {
		ResolveLogger(s.Logger).Info("blacklisted content detected",
			"event", "blacklist_screen_matched",
			"module", "moderation-safety/blacklist-service",
			"layer", "application",
			"matches", len(matched),
		)
	}
	return matched, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

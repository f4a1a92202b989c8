package queries

import (
	"context"
	"log/slog"
	"time"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

const trendingWindow = 7 * 24 * time.Hour

type ListTrendingQuestionsQuery struct{}

type ListTrendingQuestionsResult struct {
	Items []entities.UserContent
}

type ListTrendingQuestionsUseCase struct {
	Contents ports.ContentRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute returns the most liked questions of the last seven days, newest
// first among equally liked ones.
func (u ListTrendingQuestionsUseCase) Execute(ctx context.Context, _ ListTrendingQuestionsQuery) (ListTrendingQuestionsResult, error) {
	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	items, err := u.Contents.ListTrendingQuestions(ctx, now.Add(-trendingWindow), services.TrendingLimit)
	if err != nil {
		application.ResolveLogger(u.Logger).Error("list trending questions failed",
			"event", "user_content_trending_failed",
			"module", "community-experience/user-content-service",
			"layer", "application",
			"error", err.Error(),
		)
		return ListTrendingQuestionsResult{}, err
	}
	return ListTrendingQuestionsResult{Items: items}, nil
}

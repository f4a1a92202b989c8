package queries

import (
	"context"
	"log/slog"
	"strings"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

type SearchQuestionsQuery struct {
	Query  string
	Params services.RawListParams
}

type SearchQuestionsResult struct {
	Items  []entities.UserContent
	Total  int
	Filter entities.ListFilter
}

type SearchQuestionsUseCase struct {
	Contents ports.ContentRepository
	Logger   *slog.Logger
}

func (u SearchQuestionsUseCase) Execute(ctx context.Context, query SearchQuestionsQuery) (SearchQuestionsResult, error) {
	logger := application.ResolveLogger(u.Logger)
	filter, err := services.ParseListFilter(query.Params, services.QuestionSortFields, entities.SortByTimestamp)
	if err != nil {
		logger.Warn("search questions rejected filter",
			"event", "user_content_search_invalid_filter",
			"module", "community-experience/user-content-service",
			"layer", "application",
			"sort_by", query.Params.SortBy,
			"sort_direction", query.Params.SortDirection,
		)
		return SearchQuestionsResult{}, err
	}
	filter.Query = strings.TrimSpace(query.Query)

	items, total, err := u.Contents.SearchQuestions(ctx, filter)
	if err != nil {
		logger.Error("search questions failed",
			"event", "user_content_search_failed",
			"module", "community-experience/user-content-service",
			"layer", "application",
			"error", err.Error(),
		)
		return SearchQuestionsResult{}, err
	}

	logger.Debug("search questions completed",
		"event", "user_content_search_completed",
		"module", "community-experience/user-content-service",
		"layer", "application",
		"total", total,
		"returned", len(items),
	)
	return SearchQuestionsResult{Items: items, Total: total, Filter: filter}, nil
}

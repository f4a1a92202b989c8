package queries

import (
	"context"
	"log/slog"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

type ListAnswersQuery struct {
	QuestionID string
	UserID     string
	Params     services.RawListParams
}

type ListAnswersResult struct {
	Items   []entities.UserContent
	Ratings map[string]entities.Rating
	Total   int
	Filter  entities.ListFilter
}

type ListAnswersUseCase struct {
	Contents ports.ContentRepository
	Ratings  ports.RatingRepository
	Logger   *slog.Logger
}

// Execute lists a question's answers, best like/dislike ratio first unless
// the caller asks otherwise.
func (u ListAnswersUseCase) Execute(ctx context.Context, query ListAnswersQuery) (ListAnswersResult, error) {
	logger := application.ResolveLogger(u.Logger)
	filter, err := services.ParseListFilter(query.Params, services.AnswerSortFields, entities.SortByLDR)
	if err != nil {
		return ListAnswersResult{}, err
	}
	question, err := loadQuestion(ctx, u.Contents, query.QuestionID)
	if err != nil {
		return ListAnswersResult{}, err
	}
	filter.QuestionID = question.ID

	items, total, err := u.Contents.ListAnswers(ctx, filter)
	if err != nil {
		logger.Error("list answers failed",
			"event", "user_content_list_answers_failed",
			"module", "community-experience/user-content-service",
			"layer", "application",
			"question_id", question.ID,
			"error", err.Error(),
		)
		return ListAnswersResult{}, err
	}
	ratings, err := callerRatings(ctx, u.Ratings, query.UserID, items)
	if err != nil {
		return ListAnswersResult{}, err
	}
	return ListAnswersResult{
		Items:   items,
		Ratings: ratings,
		Total:   total,
		Filter:  filter,
	}, nil
}

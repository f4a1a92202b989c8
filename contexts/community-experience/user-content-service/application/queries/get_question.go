package queries

import (
	"context"
	"errors"
	"log/slog"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

type GetQuestionQuery struct {
	QuestionID string
	UserID     string
}

type GetQuestionResult struct {
	Question entities.UserContent
	Rating   entities.Rating
}

type GetQuestionUseCase struct {
	Contents ports.ContentRepository
	Ratings  ports.RatingRepository
	Logger   *slog.Logger
}

func (u GetQuestionUseCase) Execute(ctx context.Context, query GetQuestionQuery) (GetQuestionResult, error) {
	question, err := loadQuestion(ctx, u.Contents, query.QuestionID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrInvalidContentID) && !errors.Is(err, domainerrors.ErrQuestionNotFound) {
			application.ResolveLogger(u.Logger).Error("get question failed",
				"event", "user_content_get_question_failed",
				"module", "community-experience/user-content-service",
				"layer", "application",
				"question_id", query.QuestionID,
				"error", err.Error(),
			)
		}
		return GetQuestionResult{}, err
	}

	ratings, err := callerRatings(ctx, u.Ratings, query.UserID, []entities.UserContent{question})
	if err != nil {
		return GetQuestionResult{}, err
	}
	return GetQuestionResult{Question: question, Rating: ratings[question.ID]}, nil
}

type GetQuestionTitleUseCase struct {
	Contents ports.ContentRepository
	Logger   *slog.Logger
}

func (u GetQuestionTitleUseCase) Execute(ctx context.Context, questionID string) (string, error) {
	question, err := loadQuestion(ctx, u.Contents, questionID)
	if err != nil {
		return "", err
	}
	return question.Title, nil
}

func loadQuestion(ctx context.Context, contents ports.ContentRepository, rawID string) (entities.UserContent, error) {
	questionID, err := services.ValidateContentID(rawID)
	if err != nil {
		return entities.UserContent{}, err
	}
	content, err := contents.GetContent(ctx, questionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrContentNotFound) {
			return entities.UserContent{}, domainerrors.ErrQuestionNotFound
		}
		return entities.UserContent{}, err
	}
	if !content.IsQuestion() {
		return entities.UserContent{}, domainerrors.ErrQuestionNotFound
	}
	return content, nil
}

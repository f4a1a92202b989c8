package commands

import (
	"context"
	"log/slog"

	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

type CreateAIAnswerCommand struct {
	QuestionID string
	Content    string
}

// CreateAIAnswerUseCase stores a generated answer authored by Simp. A
// question holds at most one AI answer; repeats fail with ErrAIAnswerExists.
type CreateAIAnswerUseCase struct {
	Contents    ports.ContentRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateAIAnswerUseCase) Execute(ctx context.Context, cmd CreateAIAnswerCommand) (CreateAnswerResult, error) {
	content, err := services.ValidateAnswer(cmd.Content)
	if err != nil {
		return CreateAnswerResult{}, err
	}
	answer, err := writeAnswer(ctx, answerWriter{
		Contents:    u.Contents,
		Clock:       u.Clock,
		IDGenerator: u.IDGenerator,
		Logger:      u.Logger,
	}, cmd.QuestionID, entities.UserContent{
		Content:    content,
		AuthorID:   entities.AIAuthorID,
		AuthorName: entities.AIAuthorName,
		AuthorType: entities.AuthorTypeAI,
	})
	if err != nil {
		return CreateAnswerResult{}, err
	}
	return CreateAnswerResult{Answer: answer}, nil
}

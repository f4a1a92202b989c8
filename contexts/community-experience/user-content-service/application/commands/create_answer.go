package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
	"simpleq/internal/shared/events"
)

type CreateAnswerCommand struct {
	QuestionID string
	AuthorID   string
	AuthorName string
	Content    string
}

type CreateAnswerResult struct {
	Answer entities.UserContent
}

type CreateAnswerUseCase struct {
	Contents    ports.ContentRepository
	Screener    ports.ContentScreener
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateAnswerUseCase) Execute(ctx context.Context, cmd CreateAnswerCommand) (CreateAnswerResult, error) {
	authorID := strings.TrimSpace(cmd.AuthorID)
	if authorID == "" {
		return CreateAnswerResult{}, domainerrors.ErrUnauthenticated
	}
	content, err := services.ValidateAnswer(cmd.Content)
	if err != nil {
		return CreateAnswerResult{}, err
	}
	if err := screenContent(ctx, u.Screener, content); err != nil {
		if errors.Is(err, domainerrors.ErrContentBlacklisted) {
			application.ResolveLogger(u.Logger).Warn("answer rejected by blacklist",
				"event", "user_content_answer_blacklisted",
				"module", "community-experience/user-content-service",
				"layer", "application",
				"question_id", cmd.QuestionID,
				"author_id", authorID,
			)
		}
		return CreateAnswerResult{}, err
	}

	answer, err := writeAnswer(ctx, answerWriter{
		Contents:    u.Contents,
		Clock:       u.Clock,
		IDGenerator: u.IDGenerator,
		Logger:      u.Logger,
	}, cmd.QuestionID, entities.UserContent{
		Content:    content,
		AuthorID:   authorID,
		AuthorName: strings.TrimSpace(cmd.AuthorName),
		AuthorType: entities.AuthorTypeUser,
	})
	if err != nil {
		return CreateAnswerResult{}, err
	}
	return CreateAnswerResult{Answer: answer}, nil
}

type answerWriter struct {
	Contents    ports.ContentRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// writeAnswer checks the target question and persists the answer with its
// usercontent.answer.created outbox event.
func writeAnswer(ctx context.Context, w answerWriter, rawQuestionID string, answer entities.UserContent) (entities.UserContent, error) {
	logger := application.ResolveLogger(w.Logger)
	questionID, err := services.ValidateContentID(rawQuestionID)
	if err != nil {
		return entities.UserContent{}, err
	}
	question, err := w.Contents.GetContent(ctx, questionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrContentNotFound) {
			return entities.UserContent{}, domainerrors.ErrQuestionNotFound
		}
		return entities.UserContent{}, err
	}
	if !question.IsQuestion() {
		return entities.UserContent{}, domainerrors.ErrQuestionNotFound
	}

	now := time.Now().UTC()
	if w.Clock != nil {
		now = w.Clock.Now().UTC()
	}
	answerID, err := w.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.UserContent{}, err
	}
	eventID, err := w.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.UserContent{}, err
	}

	answer.ID = answerID
	answer.Type = entities.ContentTypeAnswer
	answer.QuestionID = question.ID
	answer.CreatedAt = now
	answer.UpdatedAt = now

	envelope, err := buildEnvelope(ctx, eventID, events.TopicAnswerCreated, "question_id", question.ID, now, events.AnswerCreated{
		AnswerID:   answer.ID,
		QuestionID: question.ID,
		AuthorID:   answer.AuthorID,
		AuthorType: string(answer.AuthorType),
		CreatedAt:  now,
	})
	if err != nil {
		return entities.UserContent{}, err
	}

	if err := w.Contents.CreateAnswerWithOutbox(ctx, answer, envelope); err != nil {
		if !errors.Is(err, domainerrors.ErrAIAnswerExists) {
			logger.Error("create answer failed on write transaction",
				"event", "user_content_answer_write_failed",
				"module", "community-experience/user-content-service",
				"layer", "application",
				"question_id", question.ID,
				"author_id", answer.AuthorID,
				"error", err.Error(),
			)
		}
		return entities.UserContent{}, err
	}

	logger.Info("answer created",
		"event", "user_content_answer_created",
		"module", "community-experience/user-content-service",
		"layer", "application",
		"answer_id", answer.ID,
		"question_id", question.ID,
		"author_id", answer.AuthorID,
		"author_type", answer.AuthorType,
	)
	return answer, nil
}

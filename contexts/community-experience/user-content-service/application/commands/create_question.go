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

type CreateQuestionCommand struct {
	AuthorID     string
	AuthorName   string
	Title        string
	Content      string
	Tags         []string
	IsDiscussion bool
	EnableAI     bool
}

type CreateQuestionResult struct {
	Question entities.UserContent
}

type CreateQuestionUseCase struct {
	Contents    ports.ContentRepository
	Screener    ports.ContentScreener
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute validates the question, screens it against the blacklist and
// persists it together with a usercontent.question.created outbox event.
func (u CreateQuestionUseCase) Execute(ctx context.Context, cmd CreateQuestionCommand) (CreateQuestionResult, error) {
	logger := application.ResolveLogger(u.Logger)
	authorID := strings.TrimSpace(cmd.AuthorID)
	if authorID == "" {
		return CreateQuestionResult{}, domainerrors.ErrUnauthenticated
	}

	draft, err := services.ValidateQuestion(cmd.Title, cmd.Content, cmd.Tags)
	if err != nil {
		return CreateQuestionResult{}, err
	}
	texts := append([]string{draft.Title, draft.Content}, draft.Tags...)
	if err := screenContent(ctx, u.Screener, texts...); err != nil {
		if errors.Is(err, domainerrors.ErrContentBlacklisted) {
			logger.Warn("question rejected by blacklist",
				"event", "user_content_question_blacklisted",
				"module", "community-experience/user-content-service",
				"layer", "application",
				"author_id", authorID,
			)
		}
		return CreateQuestionResult{}, err
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	questionID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateQuestionResult{}, err
	}
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateQuestionResult{}, err
	}

	question := entities.UserContent{
		ID:           questionID,
		Type:         entities.ContentTypeQuestion,
		Title:        draft.Title,
		Content:      draft.Content,
		Tags:         draft.Tags,
		IsDiscussion: cmd.IsDiscussion,
		EnableAI:     cmd.EnableAI,
		AuthorID:     authorID,
		AuthorName:   strings.TrimSpace(cmd.AuthorName),
		AuthorType:   entities.AuthorTypeUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	envelope, err := buildEnvelope(ctx, eventID, events.TopicQuestionCreated, "question_id", question.ID, now, events.QuestionCreated{
		QuestionID: question.ID,
		AuthorID:   question.AuthorID,
		Title:      question.Title,
		Content:    question.Content,
		Tags:       question.Tags,
		EnableAI:   question.EnableAI,
		CreatedAt:  now,
	})
	if err != nil {
		return CreateQuestionResult{}, err
	}

	if err := u.Contents.CreateQuestionWithOutbox(ctx, question, envelope); err != nil {
		logger.Error("create question failed on write transaction",
			"event", "user_content_question_write_failed",
			"module", "community-experience/user-content-service",
			"layer", "application",
			"author_id", authorID,
			"error", err.Error(),
		)
		return CreateQuestionResult{}, err
	}

	logger.Info("question created",
		"event", "user_content_question_created",
		"module", "community-experience/user-content-service",
		"layer", "application",
		"question_id", question.ID,
		"author_id", authorID,
		"enable_ai", question.EnableAI,
	)
	return CreateQuestionResult{Question: question}, nil
}

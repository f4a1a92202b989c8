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
)

type RateContentCommand struct {
	ContentID   string
	ContentType entities.ContentType
	UserID      string
	Rating      string
}

type RateContentResult struct {
	Likes    int
	Dislikes int
	Rating   entities.Rating
}

type RateContentUseCase struct {
	Contents ports.ContentRepository
	Ratings  ports.RatingRepository
	Clock    ports.Clock
	Logger   *slog.Logger
}

// Execute sets the caller's rating on a question or answer. RatingNone
// withdraws a previous rating.
func (u RateContentUseCase) Execute(ctx context.Context, cmd RateContentCommand) (RateContentResult, error) {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return RateContentResult{}, domainerrors.ErrUnauthenticated
	}
	rating, err := entities.ParseRating(cmd.Rating)
	if err != nil {
		return RateContentResult{}, err
	}
	contentID, err := services.ValidateContentID(cmd.ContentID)
	if err != nil {
		return RateContentResult{}, err
	}

	content, err := u.Contents.GetContent(ctx, contentID)
	if err != nil {
		return RateContentResult{}, notFoundFor(cmd.ContentType, err)
	}
	if cmd.ContentType != "" && content.Type != cmd.ContentType {
		return RateContentResult{}, notFoundFor(cmd.ContentType, domainerrors.ErrContentNotFound)
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	updated, err := u.Ratings.SetRating(ctx, content.ID, userID, rating, now)
	if err != nil {
		application.ResolveLogger(u.Logger).Error("rate content failed",
			"event", "user_content_rate_failed",
			"module", "community-experience/user-content-service",
			"layer", "application",
			"content_id", content.ID,
			"user_id", userID,
			"error", err.Error(),
		)
		return RateContentResult{}, err
	}

	application.ResolveLogger(u.Logger).Info("content rated",
		"event", "user_content_rated",
		"module", "community-experience/user-content-service",
		"layer", "application",
		"content_id", content.ID,
		"user_id", userID,
		"rating", rating,
	)
	return RateContentResult{
		Likes:    updated.Likes,
		Dislikes: updated.Dislikes,
		Rating:   rating,
	}, nil
}

func notFoundFor(contentType entities.ContentType, err error) error {
	if contentType == entities.ContentTypeQuestion && errors.Is(err, domainerrors.ErrContentNotFound) {
		return domainerrors.ErrQuestionNotFound
	}
	return err
}

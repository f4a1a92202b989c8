package ports

import (
	"context"
	"time"

	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	contractsv1 "simpleq/contracts/gen/events/v1"
	"simpleq/internal/shared/outbox"
)

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// ContentRepository owns question/answer persistence and the transaction
// boundary between content rows and their outbox events.
type ContentRepository interface {
	// GetContent returns ErrContentNotFound for unknown ids.
	GetContent(ctx context.Context, contentID string) (entities.UserContent, error)
	ListTrendingQuestions(ctx context.Context, since time.Time, limit int) ([]entities.UserContent, error)
	SearchQuestions(ctx context.Context, filter entities.ListFilter) ([]entities.UserContent, int, error)
	ListAnswers(ctx context.Context, filter entities.ListFilter) ([]entities.UserContent, int, error)
	// CreateQuestionWithOutbox must atomically persist the question, its tags
	// and the outbox event.
	CreateQuestionWithOutbox(ctx context.Context, question entities.UserContent, event EventEnvelope) error
	// CreateAnswerWithOutbox must atomically persist the answer, bump the
	// question's answer count and persist the outbox event. A second AI answer
	// for the same question fails with ErrAIAnswerExists.
	CreateAnswerWithOutbox(ctx context.Context, answer entities.UserContent, event EventEnvelope) error
}

// RatingRepository stores one rating per (content, user) and keeps the
// content like/dislike counters in step.
type RatingRepository interface {
	GetRatings(ctx context.Context, userID string, contentIDs []string) (map[string]entities.Rating, error)
	// SetRating replaces the user's rating (RatingNone removes it) and returns
	// the content with updated counters.
	SetRating(ctx context.Context, contentID string, userID string, rating entities.Rating, ratedAt time.Time) (entities.UserContent, error)
}

// ContentScreener reports blacklisted names found in texts.
type ContentScreener interface {
	ScreenText(ctx context.Context, texts ...string) ([]string, error)
}

// AnswerGenerator produces AI answers from a prompt.
type AnswerGenerator interface {
	RequestGPT(ctx context.Context, prompt string) (string, error)
}

// Clock allows deterministic testing of time windows.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts content/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventDedupStore provides idempotent processing guarantees for consumed events.
type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

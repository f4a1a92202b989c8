package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/application/commands"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/ports"
	"simpleq/internal/shared/events"
)

const defaultAIConsumerGroup = "user-content-ai-answer-cg"

// AIAnswerConsumer answers newly created AI-enabled questions through the
// answer generator.
type AIAnswerConsumer struct {
	Subscriber    ports.EventSubscriber
	Dedup         ports.EventDedupStore
	Generator     ports.AnswerGenerator
	CreateAnswer  commands.CreateAIAnswerUseCase
	Clock         ports.Clock
	Enabled       bool
	ConsumerGroup string
	DedupTTL      time.Duration
	Logger        *slog.Logger
}

func (c AIAnswerConsumer) Start(ctx context.Context) error {
	group := c.ConsumerGroup
	if group == "" {
		group = defaultAIConsumerGroup
	}
	return c.Subscriber.Subscribe(ctx, events.TopicQuestionCreated, group, c.Handle)
}

// Handle processes one usercontent.question.created event.
func (c AIAnswerConsumer) Handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	now := time.Now().UTC()
	if c.Clock != nil {
		now = c.Clock.Now().UTC()
	}

	var payload events.QuestionCreated
	if err := event.DecodeData(&payload); err != nil {
		return fmt.Errorf("decode question created payload: %w", err)
	}
	if payload.QuestionID == "" {
		return fmt.Errorf("question created event missing question_id")
	}
	if !payload.EnableAI || !c.Enabled {
		return nil
	}

	alreadyProcessed, err := c.Dedup.ReserveEvent(ctx, event.EventID, hashPayload(event.Data), now.Add(c.dedupTTL()))
	if err != nil {
		logger.Error("question event dedupe failed",
			"event", "user_content_ai_dedupe_failed",
			"module", "community-experience/user-content-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	if alreadyProcessed {
		logger.Debug("question event already processed",
			"event", "user_content_ai_event_replayed",
			"module", "community-experience/user-content-service",
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	output, err := c.Generator.RequestGPT(ctx, buildPrompt(payload))
	if err != nil {
		logger.Error("ai answer generation failed",
			"event", "user_content_ai_generation_failed",
			"module", "community-experience/user-content-service",
			"layer", "worker",
			"question_id", payload.QuestionID,
			"error", err.Error(),
		)
		return err
	}
	if strings.TrimSpace(output) == "" {
		logger.Warn("ai answer generation returned no output",
			"event", "user_content_ai_generation_empty",
			"module", "community-experience/user-content-service",
			"layer", "worker",
			"question_id", payload.QuestionID,
		)
		return nil
	}

	result, err := c.CreateAnswer.Execute(ctx, commands.CreateAIAnswerCommand{
		QuestionID: payload.QuestionID,
		Content:    output,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAIAnswerExists) {
			return nil
		}
		return err
	}

	logger.Info("ai answer stored",
		"event", "user_content_ai_answer_stored",
		"module", "community-experience/user-content-service",
		"layer", "worker",
		"question_id", payload.QuestionID,
		"answer_id", result.Answer.ID,
	)
	return nil
}

func (c AIAnswerConsumer) dedupTTL() time.Duration {
	if c.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return c.DedupTTL
}

func buildPrompt(payload events.QuestionCreated) string {
	return strings.TrimSpace(payload.Title + "\n\n" + payload.Content)
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

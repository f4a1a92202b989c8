package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	application "simpleq/contexts/community-experience/user-content-service/application"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	"simpleq/contexts/community-experience/user-content-service/ports"
	"simpleq/internal/shared/outbox"
)

type ratingKey struct {
	contentID string
	userID    string
}

// Store is an in-memory adapter implementing the user content ports for
// local runtime and tests. It is not intended as production persistence.
type Store struct {
	mu          sync.RWMutex
	contents    map[string]entities.UserContent
	ratings     map[ratingKey]entities.Rating
	outbox      map[string]outbox.Message
	outboxOrder []string
	outboxSent  map[string]time.Time
	eventDedup  map[string]string
	now         func() time.Time
	logger      *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		contents:   make(map[string]entities.UserContent),
		ratings:    make(map[ratingKey]entities.Rating),
		outbox:     make(map[string]outbox.Message),
		outboxSent: make(map[string]time.Time),
		eventDedup: make(map[string]string),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     application.ResolveLogger(logger),
	}
}

// Seed stores contents as-is, bypassing validation and outbox writes.
func (s *Store) Seed(contents ...entities.UserContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, content := range contents {
		s.contents[content.ID] = cloneContent(content)
	}
}

// SetClock replaces the store clock.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) GetContent(_ context.Context, contentID string) (entities.UserContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.contents[contentID]
	if !ok {
		return entities.UserContent{}, domainerrors.ErrContentNotFound
	}
	return cloneContent(content), nil
}

func (s *Store) ListTrendingQuestions(_ context.Context, since time.Time, limit int) ([]entities.UserContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.UserContent
	for _, content := range s.contents {
		if content.IsQuestion() && !content.CreatedAt.Before(since) {
			items = append(items, cloneContent(content))
		}
	}
	services.SortContents(items, entities.SortByLikes, true)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) SearchQuestions(_ context.Context, filter entities.ListFilter) ([]entities.UserContent, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.UserContent
	for _, content := range s.contents {
		if content.IsQuestion() && services.MatchesQuery(content, filter.Query) {
			items = append(items, cloneContent(content))
		}
	}
	services.SortContents(items, filter.SortBy, filter.Descending)
	return paginate(items, filter.Offset, filter.Limit), len(items), nil
}

func (s *Store) ListAnswers(_ context.Context, filter entities.ListFilter) ([]entities.UserContent, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.UserContent
	for _, content := range s.contents {
		if content.IsAnswer() && content.QuestionID == filter.QuestionID {
			items = append(items, cloneContent(content))
		}
	}
	services.SortContents(items, filter.SortBy, filter.Descending)
	return paginate(items, filter.Offset, filter.Limit), len(items), nil
}

func (s *Store) CreateQuestionWithOutbox(_ context.Context, question entities.UserContent, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.contents[question.ID]; exists {
		return domainerrors.ErrRepositoryInvariant
	}
	if _, exists := s.outbox[event.EventID]; exists {
		return domainerrors.ErrRepositoryInvariant
	}
	s.contents[question.ID] = cloneContent(question)
	s.appendOutbox(event, payload)
	return nil
}

func (s *Store) CreateAnswerWithOutbox(_ context.Context, answer entities.UserContent, event ports.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	question, ok := s.contents[answer.QuestionID]
	if !ok || !question.IsQuestion() {
		return domainerrors.ErrQuestionNotFound
	}
	if answer.AuthorType == entities.AuthorTypeAI {
		for _, existing := range s.contents {
			if existing.QuestionID == answer.QuestionID && existing.AuthorType == entities.AuthorTypeAI {
				return domainerrors.ErrAIAnswerExists
			}
		}
	}
	if _, exists := s.contents[answer.ID]; exists {
		return domainerrors.ErrRepositoryInvariant
	}

	question.AnswerCount++
	question.UpdatedAt = answer.CreatedAt
	s.contents[question.ID] = question
	s.contents[answer.ID] = cloneContent(answer)
	s.appendOutbox(event, payload)
	return nil
}

func (s *Store) GetRatings(_ context.Context, userID string, contentIDs []string) (map[string]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]entities.Rating, len(contentIDs))
	for _, id := range contentIDs {
		if rating, ok := s.ratings[ratingKey{contentID: id, userID: userID}]; ok {
			result[id] = rating
		}
	}
	return result, nil
}

func (s *Store) SetRating(
	_ context.Context,
	contentID string,
	userID string,
	rating entities.Rating,
	ratedAt time.Time,
) (entities.UserContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.contents[contentID]
	if !ok {
		return entities.UserContent{}, domainerrors.ErrContentNotFound
	}

	key := ratingKey{contentID: contentID, userID: userID}
	previous, ok := s.ratings[key]
	if !ok {
		previous = entities.RatingNone
	}
	likes, dislikes := services.RatingDelta(previous, rating)
	content.Likes += likes
	content.Dislikes += dislikes
	if likes != 0 || dislikes != 0 {
		content.UpdatedAt = ratedAt.UTC()
	}
	s.contents[contentID] = content

	if rating == entities.RatingNone {
		delete(s.ratings, key)
	} else {
		s.ratings[key] = rating
	}
	return cloneContent(content), nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]outbox.Message, 0, limit)
	for _, outboxID := range s.outboxOrder {
		if _, sent := s.outboxSent[outboxID]; sent {
			continue
		}
		message := s.outbox[outboxID]
		message.Payload = append([]byte(nil), message.Payload...)
		items = append(items, message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.outbox[outboxID]; !ok {
		return domainerrors.ErrRepositoryInvariant
	}
	s.outboxSent[outboxID] = sentAt.UTC()
	return nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.eventDedup[eventID]; ok {
		if existing != payloadHash {
			return false, domainerrors.ErrIdempotencyConflict
		}
		return true, nil
	}
	s.eventDedup[eventID] = payloadHash
	return false, nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutbox(event ports.EventEnvelope, payload []byte) {
	s.outbox[event.EventID] = outbox.Message{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		CreatedAt:    event.OccurredAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, event.EventID)
	s.logger.Debug("outbox message stored",
		"event", "user_content_outbox_stored",
		"module", "community-experience/user-content-service",
		"layer", "adapter",
		"outbox_id", event.EventID,
		"event_type", event.EventType,
	)
}

func paginate(items []entities.UserContent, offset int, limit int) []entities.UserContent {
	if offset >= len(items) {
		return []entities.UserContent{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func cloneContent(content entities.UserContent) entities.UserContent {
	content.Tags = append([]string(nil), content.Tags...)
	return content
}

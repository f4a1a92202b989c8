package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"simpleq/contexts/community-experience/user-content-service/adapters/memory"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/internal/shared/events"
)

var questionBody = strings.Repeat("lorem ", 25)

type fakeScreener struct {
	blocked string
	err     error
}

func (f fakeScreener) ScreenText(_ context.Context, texts ...string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, text := range texts {
		if f.blocked != "" && strings.Contains(strings.ToLower(text), f.blocked) {
			return []string{f.blocked}, nil
		}
	}
	return nil, nil
}

func newCreateQuestion(store *memory.Store, screener fakeScreener) CreateQuestionUseCase {
	return CreateQuestionUseCase{
		Contents:    store,
		Screener:    screener,
		Clock:       store,
		IDGenerator: store,
	}
}

func seedQuestion(t *testing.T, store *memory.Store) entities.UserContent {
	t.Helper()
	result, err := newCreateQuestion(store, fakeScreener{}).Execute(context.Background(), CreateQuestionCommand{
		AuthorID:   "user-1",
		AuthorName: "ada@example.com",
		Title:      "How do goroutines work?",
		Content:    questionBody,
		Tags:       []string{"go"},
		EnableAI:   true,
	})
	if err != nil {
		t.Fatalf("seed question failed: %v", err)
	}
	return result.Question
}

func TestCreateQuestionWritesOutboxEvent(t *testing.T) {
	store := memory.NewStore(nil)
	question := seedQuestion(t, store)

	if question.Type != entities.ContentTypeQuestion || question.AuthorType != entities.AuthorTypeUser {
		t.Fatalf("unexpected question %+v", question)
	}
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != events.TopicQuestionCreated {
		t.Fatalf("expected one question created event, got %+v", pending)
	}
	if pending[0].PartitionKey != question.ID {
		t.Fatalf("expected partition key %s, got %s", question.ID, pending[0].PartitionKey)
	}
}

func TestCreateQuestionRequiresIdentity(t *testing.T) {
	store := memory.NewStore(nil)
	_, err := newCreateQuestion(store, fakeScreener{}).Execute(context.Background(), CreateQuestionCommand{
		Title:   "How do goroutines work?",
		Content: questionBody,
		Tags:    []string{"go"},
	})
	if !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestCreateQuestionRejectsBlacklistedContent(t *testing.T) {
	store := memory.NewStore(nil)
	_, err := newCreateQuestion(store, fakeScreener{blocked: "casino"}).Execute(context.Background(), CreateQuestionCommand{
		AuthorID: "user-1",
		Title:    "Where is the best place?",
		Content:  questionBody,
		Tags:     []string{"casino"},
	})
	if !errors.Is(err, domainerrors.ErrContentBlacklisted) {
		t.Fatalf("expected blacklisted, got %v", err)
	}
	if !strings.Contains(err.Error(), "casino") {
		t.Fatalf("expected matched word in error, got %v", err)
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected no outbox writes, got %d", len(pending))
	}
}

func TestCreateQuestionScreenerFailure(t *testing.T) {
	store := memory.NewStore(nil)
	_, err := newCreateQuestion(store, fakeScreener{err: errors.New("db down")}).Execute(context.Background(), CreateQuestionCommand{
		AuthorID: "user-1",
		Title:    "How do goroutines work?",
		Content:  questionBody,
		Tags:     []string{"go"},
	})
	if !errors.Is(err, domainerrors.ErrDependencyFailed) {
		t.Fatalf("expected dependency failure, got %v", err)
	}
}

func TestCreateAnswerIncrementsAnswerCount(t *testing.T) {
	store := memory.NewStore(nil)
	question := seedQuestion(t, store)
	useCase := CreateAnswerUseCase{Contents: store, Screener: fakeScreener{}, Clock: store, IDGenerator: store}

	result, err := useCase.Execute(context.Background(), CreateAnswerCommand{
		QuestionID: question.ID,
		AuthorID:   "user-2",
		AuthorName: "grace",
		Content:    "  They are scheduled by the runtime.  ",
	})
	if err != nil {
		t.Fatalf("create answer failed: %v", err)
	}
	if result.Answer.Content != "They are scheduled by the runtime." || result.Answer.QuestionID != question.ID {
		t.Fatalf("unexpected answer %+v", result.Answer)
	}

	stored, err := store.GetContent(context.Background(), question.ID)
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	if stored.AnswerCount != 1 {
		t.Fatalf("expected answer count 1, got %d", stored.AnswerCount)
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 2 || pending[1].EventType != events.TopicAnswerCreated {
		t.Fatalf("expected answer created event, got %+v", pending)
	}
}

func TestCreateAnswerErrors(t *testing.T) {
	store := memory.NewStore(nil)
	question := seedQuestion(t, store)
	useCase := CreateAnswerUseCase{Contents: store, Clock: store, IDGenerator: store}

	cases := []struct {
		name    string
		cmd     CreateAnswerCommand
		wantErr error
	}{
		{"anonymous", CreateAnswerCommand{QuestionID: question.ID, Content: "x"}, domainerrors.ErrUnauthenticated},
		{"empty", CreateAnswerCommand{QuestionID: question.ID, AuthorID: "u", Content: "   "}, domainerrors.ErrEmptyAnswer},
		{"bad id", CreateAnswerCommand{QuestionID: "42", AuthorID: "u", Content: "x"}, domainerrors.ErrInvalidContentID},
		{"unknown question", CreateAnswerCommand{QuestionID: "0b8f7b9a-3f0e-4c34-9d8e-2d5f8f0f7c11", AuthorID: "u", Content: "x"}, domainerrors.ErrQuestionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := useCase.Execute(context.Background(), tc.cmd); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateAIAnswerOncePerQuestion(t *testing.T) {
	store := memory.NewStore(nil)
	question := seedQuestion(t, store)
	useCase := CreateAIAnswerUseCase{Contents: store, Clock: store, IDGenerator: store}

	result, err := useCase.Execute(context.Background(), CreateAIAnswerCommand{QuestionID: question.ID, Content: "generated"})
	if err != nil {
		t.Fatalf("first ai answer failed: %v", err)
	}
	if result.Answer.AuthorName != entities.AIAuthorName || result.Answer.AuthorType != entities.AuthorTypeAI {
		t.Fatalf("unexpected ai author %+v", result.Answer)
	}
	_, err = useCase.Execute(context.Background(), CreateAIAnswerCommand{QuestionID: question.ID, Content: "again"})
	if !errors.Is(err, domainerrors.ErrAIAnswerExists) {
		t.Fatalf("expected ai answer exists, got %v", err)
	}
}

func TestRateContent(t *testing.T) {
	store := memory.NewStore(nil)
	question := seedQuestion(t, store)
	useCase := RateContentUseCase{Contents: store, Ratings: store, Clock: store}
	ctx := context.Background()

	rate := func(userID string, rating string) RateContentResult {
		t.Helper()
		result, err := useCase.Execute(ctx, RateContentCommand{
			ContentID:   question.ID,
			ContentType: entities.ContentTypeQuestion,
			UserID:      userID,
			Rating:      rating,
		})
		if err != nil {
			t.Fatalf("rate %s failed: %v", rating, err)
		}
		return result
	}

	rate("user-2", "like")
	result := rate("user-3", "dislike")
	if result.Likes != 1 || result.Dislikes != 1 {
		t.Fatalf("expected 1/1, got %+v", result)
	}
	result = rate("user-2", "dislike")
	if result.Likes != 0 || result.Dislikes != 2 {
		t.Fatalf("expected 0/2 after switching, got %+v", result)
	}
	result = rate("user-2", "none")
	if result.Likes != 0 || result.Dislikes != 1 || result.Rating != entities.RatingNone {
		t.Fatalf("expected 0/1 after withdrawing, got %+v", result)
	}

	_, err := useCase.Execute(ctx, RateContentCommand{ContentID: question.ID, UserID: "user-2", Rating: "love"})
	if !errors.Is(err, domainerrors.ErrInvalidRating) {
		t.Fatalf("expected invalid rating, got %v", err)
	}
	_, err = useCase.Execute(ctx, RateContentCommand{
		ContentID:   question.ID,
		ContentType: entities.ContentTypeAnswer,
		UserID:      "user-2",
		Rating:      "like",
	})
	if !errors.Is(err, domainerrors.ErrContentNotFound) {
		t.Fatalf("expected answer lookup to miss a question id, got %v", err)
	}
}

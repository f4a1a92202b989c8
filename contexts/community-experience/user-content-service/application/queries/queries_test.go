package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"simpleq/contexts/community-experience/user-content-service/adapters/memory"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
)

var now = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func question(title string, likes int, age time.Duration, tags ...string) entities.UserContent {
	return entities.UserContent{
		ID:         uuid.NewString(),
		Type:       entities.ContentTypeQuestion,
		Title:      title,
		Content:    "body of " + title,
		Tags:       tags,
		AuthorID:   "user-1",
		AuthorType: entities.AuthorTypeUser,
		Likes:      likes,
		CreatedAt:  now.Add(-age),
		UpdatedAt:  now.Add(-age),
	}
}

func answer(questionID string, likes int, dislikes int, age time.Duration) entities.UserContent {
	return entities.UserContent{
		ID:         uuid.NewString(),
		Type:       entities.ContentTypeAnswer,
		QuestionID: questionID,
		Content:    "an answer",
		AuthorID:   "user-2",
		AuthorType: entities.AuthorTypeUser,
		Likes:      likes,
		Dislikes:   dislikes,
		CreatedAt:  now.Add(-age),
		UpdatedAt:  now.Add(-age),
	}
}

func newStore(contents ...entities.UserContent) *memory.Store {
	store := memory.NewStore(nil)
	store.SetClock(func() time.Time { return now })
	store.Seed(contents...)
	return store
}

func TestListTrendingQuestionsUsesSevenDayWindow(t *testing.T) {
	fresh := question("fresh and liked", 5, time.Hour)
	tied := question("older but tied", 5, 48*time.Hour)
	quiet := question("quiet", 0, time.Minute)
	stale := question("stale", 100, 8*24*time.Hour)
	store := newStore(fresh, tied, quiet, stale)

	result, err := ListTrendingQuestionsUseCase{Contents: store, Clock: store}.Execute(context.Background(), ListTrendingQuestionsQuery{})
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 trending questions, got %d", len(result.Items))
	}
	if result.Items[0].ID != fresh.ID || result.Items[1].ID != tied.ID || result.Items[2].ID != quiet.ID {
		t.Fatalf("unexpected trending order: %s, %s, %s", result.Items[0].Title, result.Items[1].Title, result.Items[2].Title)
	}
}

func TestListTrendingQuestionsCapsAtTen(t *testing.T) {
	var contents []entities.UserContent
	for i := 0; i < 15; i++ {
		contents = append(contents, question("question", i, time.Duration(i)*time.Minute))
	}
	store := newStore(contents...)
	result, err := ListTrendingQuestionsUseCase{Contents: store, Clock: store}.Execute(context.Background(), ListTrendingQuestionsQuery{})
	if err != nil {
		t.Fatalf("trending failed: %v", err)
	}
	if len(result.Items) != services.TrendingLimit {
		t.Fatalf("expected %d items, got %d", services.TrendingLimit, len(result.Items))
	}
}

func TestSearchQuestions(t *testing.T) {
	goQuestion := question("Goroutine leaks", 3, time.Hour, "go")
	rustQuestion := question("Borrow checker", 1, 2*time.Hour, "rust")
	tagged := question("Scheduler internals", 7, 3*time.Hour, "Go-runtime")
	store := newStore(goQuestion, rustQuestion, tagged)
	useCase := SearchQuestionsUseCase{Contents: store}

	result, err := useCase.Execute(context.Background(), SearchQuestionsQuery{
		Query:  "GO",
		Params: services.RawListParams{SortBy: "likes"},
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Total != 2 || result.Items[0].ID != tagged.ID || result.Items[1].ID != goQuestion.ID {
		t.Fatalf("unexpected search result total=%d items=%+v", result.Total, result.Items)
	}

	page, err := useCase.Execute(context.Background(), SearchQuestionsQuery{
		Params: services.RawListParams{Offset: "1", Limit: "1", SortDirection: "ASC"},
	})
	if err != nil {
		t.Fatalf("paged search failed: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 1 || page.Items[0].ID != rustQuestion.ID {
		t.Fatalf("unexpected page total=%d items=%+v", page.Total, page.Items)
	}
	if page.Filter.Offset != 1 || page.Filter.Limit != 1 {
		t.Fatalf("expected echoed pagination, got %+v", page.Filter)
	}

	_, err = useCase.Execute(context.Background(), SearchQuestionsQuery{Params: services.RawListParams{Limit: "500"}})
	if !errors.Is(err, domainerrors.ErrInvalidListFilter) {
		t.Fatalf("expected invalid filter, got %v", err)
	}
}

func TestGetQuestionIncludesCallerRating(t *testing.T) {
	q := question("Rated question", 0, time.Hour)
	store := newStore(q)
	if _, err := store.SetRating(context.Background(), q.ID, "user-9", entities.RatingLike, now); err != nil {
		t.Fatalf("seed rating failed: %v", err)
	}
	useCase := GetQuestionUseCase{Contents: store, Ratings: store}

	result, err := useCase.Execute(context.Background(), GetQuestionQuery{QuestionID: q.ID, UserID: "user-9"})
	if err != nil {
		t.Fatalf("get question failed: %v", err)
	}
	if result.Rating != entities.RatingLike || result.Question.Likes != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	anonymous, err := useCase.Execute(context.Background(), GetQuestionQuery{QuestionID: q.ID})
	if err != nil || anonymous.Rating != entities.RatingNone {
		t.Fatalf("expected none for anonymous caller, got %v err=%v", anonymous.Rating, err)
	}
}

func TestGetQuestionErrors(t *testing.T) {
	q := question("Question", 0, time.Hour)
	a := answer(q.ID, 0, 0, time.Minute)
	store := newStore(q, a)
	useCase := GetQuestionUseCase{Contents: store, Ratings: store}

	if _, err := useCase.Execute(context.Background(), GetQuestionQuery{QuestionID: "abc"}); !errors.Is(err, domainerrors.ErrInvalidContentID) {
		t.Fatalf("expected invalid id, got %v", err)
	}
	if _, err := useCase.Execute(context.Background(), GetQuestionQuery{QuestionID: uuid.NewString()}); !errors.Is(err, domainerrors.ErrQuestionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := useCase.Execute(context.Background(), GetQuestionQuery{QuestionID: a.ID}); !errors.Is(err, domainerrors.ErrQuestionNotFound) {
		t.Fatalf("expected answers not to resolve as questions, got %v", err)
	}

	title, err := GetQuestionTitleUseCase{Contents: store}.Execute(context.Background(), q.ID)
	if err != nil || title != "Question" {
		t.Fatalf("unexpected title %q err=%v", title, err)
	}
}

func TestListAnswersDefaultsToBestRatio(t *testing.T) {
	q := question("Question", 0, time.Hour)
	mixed := answer(q.ID, 1, 1, 3*time.Minute)
	best := answer(q.ID, 4, 0, 2*time.Minute)
	unrated := answer(q.ID, 0, 0, time.Minute)
	other := answer(uuid.NewString(), 10, 0, time.Minute)
	store := newStore(q, mixed, best, unrated, other)
	useCase := ListAnswersUseCase{Contents: store, Ratings: store}

	result, err := useCase.Execute(context.Background(), ListAnswersQuery{QuestionID: q.ID})
	if err != nil {
		t.Fatalf("list answers failed: %v", err)
	}
	if result.Total != 3 || result.Items[0].ID != best.ID || result.Items[1].ID != mixed.ID || result.Items[2].ID != unrated.ID {
		t.Fatalf("unexpected answers %+v", result.Items)
	}
	for _, item := range result.Items {
		if result.Ratings[item.ID] != entities.RatingNone {
			t.Fatalf("expected none rating for anonymous caller")
		}
	}

	newest, err := useCase.Execute(context.Background(), ListAnswersQuery{
		QuestionID: q.ID,
		Params:     services.RawListParams{SortBy: "timestamp"},
	})
	if err != nil {
		t.Fatalf("list answers failed: %v", err)
	}
	if newest.Items[0].ID != unrated.ID {
		t.Fatalf("expected newest answer first, got %+v", newest.Items[0])
	}

	if _, err := useCase.Execute(context.Background(), ListAnswersQuery{QuestionID: uuid.NewString()}); !errors.Is(err, domainerrors.ErrQuestionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
)

func TestParseListFilterDefaults(t *testing.T) {
	got, err := ParseListFilter(RawListParams{}, QuestionSortFields, entities.SortByTimestamp)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := entities.ListFilter{SortBy: entities.SortByTimestamp, Descending: true, Limit: DefaultPageLimit}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListFilterExplicit(t *testing.T) {
	got, err := ParseListFilter(RawListParams{
		SortBy:        "LDR",
		SortDirection: "asc",
		Offset:        "20",
		Limit:         "50",
	}, AnswerSortFields, entities.SortByLDR)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := entities.ListFilter{SortBy: entities.SortByLDR, Descending: false, Offset: 20, Limit: 50}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListFilterRejectsInvalidValues(t *testing.T) {
	cases := map[string]RawListParams{
		"unknown sort":        {SortBy: "views"},
		"answers for answers": {SortBy: "answers"},
		"bad direction":       {SortDirection: "sideways"},
		"negative offset":     {Offset: "-1"},
		"zero limit":          {Limit: "0"},
		"limit too large":     {Limit: "51"},
		"non numeric limit":   {Limit: "ten"},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseListFilter(raw, AnswerSortFields, entities.SortByLDR)
			if !errors.Is(err, domainerrors.ErrInvalidListFilter) {
				t.Fatalf("expected invalid filter, got %v", err)
			}
		})
	}
}

func TestSortContents(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	items := []entities.UserContent{
		{ID: "a", Likes: 1, Dislikes: 1, CreatedAt: base},
		{ID: "b", Likes: 3, Dislikes: 0, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Likes: 0, Dislikes: 0, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Likes: 6, Dislikes: 2, CreatedAt: base.Add(3 * time.Hour)},
	}

	SortContents(items, entities.SortByLDR, true)
	if got := ids(items); !cmp.Equal(got, []string{"b", "d", "a", "c"}) {
		t.Fatalf("unexpected ldr order %v", got)
	}

	SortContents(items, entities.SortByTimestamp, false)
	if got := ids(items); !cmp.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("unexpected timestamp order %v", got)
	}

	SortContents(items, entities.SortByDislikes, true)
	if got := ids(items); !cmp.Equal(got, []string{"d", "a", "c", "b"}) {
		t.Fatalf("unexpected dislikes order %v", got)
	}
}

func TestMatchesQuery(t *testing.T) {
	item := entities.UserContent{Title: "Channels in Go", Content: "select statements", Tags: []string{"Concurrency"}}
	for _, query := range []string{"", "channels", "SELECT", "concurr"} {
		if !MatchesQuery(item, query) {
			t.Fatalf("expected %q to match", query)
		}
	}
	if MatchesQuery(item, "rust") {
		t.Fatalf("expected rust not to match")
	}
}

func ids(items []entities.UserContent) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

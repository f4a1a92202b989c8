package services

import (
	"sort"
	"strconv"
	"strings"

	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
	TrendingLimit    = 10
)

var (
	QuestionSortFields = []entities.SortField{
		entities.SortByTimestamp,
		entities.SortByLikes,
		entities.SortByDislikes,
		entities.SortByLDR,
		entities.SortByAnswers,
	}
	AnswerSortFields = []entities.SortField{
		entities.SortByLDR,
		entities.SortByLikes,
		entities.SortByDislikes,
		entities.SortByTimestamp,
	}
)

// RawListParams carries listing parameters exactly as received.
type RawListParams struct {
	SortBy        string
	SortDirection string
	Offset        string
	Limit         string
}

// ParseListFilter validates raw listing parameters. Blank values take
// defaults; anything else outside the allowed set is ErrInvalidListFilter.
func ParseListFilter(raw RawListParams, allowed []entities.SortField, defaultSort entities.SortField) (entities.ListFilter, error) {
	filter := entities.ListFilter{
		SortBy:     defaultSort,
		Descending: true,
		Limit:      DefaultPageLimit,
	}

	if sortBy := strings.ToLower(strings.TrimSpace(raw.SortBy)); sortBy != "" {
		found := false
		for _, field := range allowed {
			if string(field) == sortBy {
				filter.SortBy = field
				found = true
				break
			}
		}
		if !found {
			return entities.ListFilter{}, domainerrors.ErrInvalidListFilter
		}
	}

	switch strings.ToUpper(strings.TrimSpace(raw.SortDirection)) {
	case "", "DESC":
	case "ASC":
		filter.Descending = false
	default:
		return entities.ListFilter{}, domainerrors.ErrInvalidListFilter
	}

	if offsetRaw := strings.TrimSpace(raw.Offset); offsetRaw != "" {
		offset, err := strconv.Atoi(offsetRaw)
		if err != nil || offset < 0 {
			return entities.ListFilter{}, domainerrors.ErrInvalidListFilter
		}
		filter.Offset = offset
	}
	if limitRaw := strings.TrimSpace(raw.Limit); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			return entities.ListFilter{}, domainerrors.ErrInvalidListFilter
		}
		filter.Limit = limit
	}
	return filter, nil
}

// SortContents orders items in place. Ties fall back to newest first and
// then to id so pagination is stable.
func SortContents(items []entities.UserContent, sortBy entities.SortField, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		cmp := compareBy(items[i], items[j], sortBy)
		if cmp != 0 {
			if descending {
				return cmp > 0
			}
			return cmp < 0
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// MatchesQuery reports whether a question mentions query in its title,
// content or tags, ignoring case. An empty query matches everything.
func MatchesQuery(item entities.UserContent, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Content), needle) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func compareBy(a entities.UserContent, b entities.UserContent, sortBy entities.SortField) int {
	switch sortBy {
	case entities.SortByLikes:
		return compareInt(a.Likes, b.Likes)
	case entities.SortByDislikes:
		return compareInt(a.Dislikes, b.Dislikes)
	case entities.SortByAnswers:
		return compareInt(a.AnswerCount, b.AnswerCount)
	case entities.SortByLDR:
		ra, rb := a.LikeDislikeRatio(), b.LikeDislikeRatio()
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func compareInt(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

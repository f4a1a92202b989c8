package services

import (
	"strings"

	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
)

const (
	MinTitleLength  = 6
	MinContentWords = 20
	MaxTags         = 5
)

// QuestionDraft is a validated question body.
type QuestionDraft struct {
	Title   string
	Content string
	Tags    []string
}

// NormalizeTitle trims and collapses internal runs of whitespace.
func NormalizeTitle(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// NormalizeTags trims tags, drops empty ones and keeps the first spelling of
// tags that differ only by case.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.Join(strings.Fields(tag), " ")
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func CountWords(content string) int {
	return len(strings.Fields(content))
}

func ValidateQuestion(title string, content string, tags []string) (QuestionDraft, error) {
	draft := QuestionDraft{
		Title:   NormalizeTitle(title),
		Content: strings.TrimSpace(content),
		Tags:    NormalizeTags(tags),
	}
	if len([]rune(draft.Title)) < MinTitleLength {
		return QuestionDraft{}, domainerrors.ErrInvalidTitle
	}
	if len(draft.Tags) == 0 || len(draft.Tags) > MaxTags {
		return QuestionDraft{}, domainerrors.ErrInvalidTags
	}
	if CountWords(draft.Content) < MinContentWords {
		return QuestionDraft{}, domainerrors.ErrContentTooShort
	}
	return draft, nil
}

func ValidateAnswer(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", domainerrors.ErrEmptyAnswer
	}
	return trimmed, nil
}

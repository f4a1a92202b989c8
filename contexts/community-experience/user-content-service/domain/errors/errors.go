package errors

import "errors"

var (
	ErrUnauthenticated     = errors.New("an authenticated identity is required")
	ErrInvalidContentID    = errors.New("content id must be a uuid")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrContentNotFound     = errors.New("content not found")
	ErrInvalidTitle        = errors.New("title must be longer than 5 characters")
	ErrInvalidTags         = errors.New("between 1 and 5 distinct tags are required")
	ErrContentTooShort     = errors.New("content must contain at least 20 words")
	ErrEmptyAnswer         = errors.New("answer content is required")
	ErrContentBlacklisted  = errors.New("content contains blacklisted words")
	ErrInvalidListFilter   = errors.New("invalid list filter")
	ErrInvalidRating       = errors.New("rating must be one of like, dislike, none")
	ErrAIAnswerExists      = errors.New("question already has an ai answer")
	ErrDependencyFailed    = errors.New("dependency unavailable")
	ErrIdempotencyConflict = errors.New("event id reused with a different payload")
	ErrRepositoryInvariant = errors.New("repository invariant broken")
)

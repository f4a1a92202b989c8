package entities

import (
	"strings"
	"time"

	domainerrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
)

type ContentType string

const (
	ContentTypeQuestion ContentType = "QUESTION"
	ContentTypeAnswer   ContentType = "ANSWER"
)

type AuthorType string

const (
	AuthorTypeUser AuthorType = "user"
	AuthorTypePro  AuthorType = "pro"
	AuthorTypeAI   AuthorType = "ai"
)

// The AI author is a fixed pseudo identity.
const (
	AIAuthorID   = "simp"
	AIAuthorName = "Simp"
)

type Rating string

const (
	RatingLike    Rating = "like"
	RatingDislike Rating = "dislike"
	RatingNone    Rating = "none"
)

func ParseRating(raw string) (Rating, error) {
	switch Rating(strings.ToLower(strings.TrimSpace(raw))) {
	case RatingLike:
		return RatingLike, nil
	case RatingDislike:
		return RatingDislike, nil
	case RatingNone, "":
		return RatingNone, nil
	default:
		return "", domainerrors.ErrInvalidRating
	}
}

// UserContent is either a question or an answer. QuestionID is set for
// answers only; Title, Tags, IsDiscussion and EnableAI for questions only.
type UserContent struct {
	ID           string
	Type         ContentType
	QuestionID   string
	Title        string
	Content      string
	Tags         []string
	IsDiscussion bool
	EnableAI     bool
	AuthorID     string
	AuthorName   string
	AuthorType   AuthorType
	Likes        int
	Dislikes     int
	AnswerCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c UserContent) IsQuestion() bool {
	return c.Type == ContentTypeQuestion
}

func (c UserContent) IsAnswer() bool {
	return c.Type == ContentTypeAnswer
}

// LikeDislikeRatio is likes/(likes+dislikes), 0 without votes.
func (c UserContent) LikeDislikeRatio() float64 {
	total := c.Likes + c.Dislikes
	if total <= 0 {
		return 0
	}
	return float64(c.Likes) / float64(total)
}

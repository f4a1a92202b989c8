// Package events holds the integration event types exchanged between the API
// process and the worker.
package events

import "time"

const (
	TopicQuestionCreated = "usercontent.question.created"
	TopicAnswerCreated   = "usercontent.answer.created"

	SourceUserContent = "user-content-service"
)

// QuestionCreated is published once a question row is committed.
type QuestionCreated struct {
	QuestionID string    `json:"question_id"`
	AuthorID   string    `json:"author_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	EnableAI   bool      `json:"enable_ai"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnswerCreated is published once an answer row is committed.
type AnswerCreated struct {
	AnswerID   string    `json:"answer_id"`
	QuestionID string    `json:"question_id"`
	AuthorID   string    `json:"author_id"`
	AuthorType string    `json:"author_type"`
	CreatedAt  time.Time `json:"created_at"`
}

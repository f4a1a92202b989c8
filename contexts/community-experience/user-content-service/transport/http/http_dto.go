package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type QuestionDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	IsDiscussion bool     `json:"is_discussion"`
	EnableAI     bool     `json:"enable_ai"`
	AuthorID     string   `json:"author_id"`
	AuthorName   string   `json:"author_name"`
	AuthorType   string   `json:"author_type"`
	Likes        int      `json:"likes"`
	Dislikes     int      `json:"dislikes"`
	LDR          float64  `json:"ldr"`
	AnswerCount  int      `json:"answer_count"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
	Rating       string   `json:"rating,omitempty"`
}

type AnswerDTO struct {
	ID         string  `json:"id"`
	QuestionID string  `json:"question_id"`
	Content    string  `json:"content"`
	AuthorID   string  `json:"author_id"`
	AuthorName string  `json:"author_name"`
	AuthorType string  `json:"author_type"`
	Likes      int     `json:"likes"`
	Dislikes   int     `json:"dislikes"`
	LDR        float64 `json:"ldr"`
	CreatedAt  string  `json:"created_at"`
	Rating     string  `json:"rating"`
}

type TrendingQuestionsResponse struct {
	Items []QuestionDTO `json:"items"`
}

type SearchQuestionsResponse struct {
	Items  []QuestionDTO `json:"items"`
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

type QuestionTitleResponse struct {
	Title string `json:"title"`
}

type ListAnswersResponse struct {
	Items  []AnswerDTO `json:"items"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

type CreateQuestionRequest struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	IsDiscussion bool     `json:"is_discussion"`
	EnableAI     bool     `json:"enable_ai"`
}

type CreateAnswerRequest struct {
	Content string `json:"content"`
}

type CreateContentResponse struct {
	ID string `json:"id"`
}

type RateContentRequest struct {
	Rating string `json:"rating"`
}

type RateContentResponse struct {
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	Rating   string `json:"rating"`
}

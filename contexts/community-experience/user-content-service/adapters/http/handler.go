package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"simpleq/contexts/community-experience/user-content-service/application/commands"
	"simpleq/contexts/community-experience/user-content-service/application/queries"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	httptransport "simpleq/contexts/community-experience/user-content-service/transport/http"
)

type Handler struct {
	Trending       queries.ListTrendingQuestionsUseCase
	Search         queries.SearchQuestionsUseCase
	GetQuestion    queries.GetQuestionUseCase
	GetTitle       queries.GetQuestionTitleUseCase
	ListAnswers    queries.ListAnswersUseCase
	CreateQuestion commands.CreateQuestionUseCase
	CreateAnswer   commands.CreateAnswerUseCase
	RateContent    commands.RateContentUseCase
	Logger         *slog.Logger
}

// Caller is the identity a request acts as. An empty ID means anonymous.
type Caller struct {
	ID          string
	DisplayName string
}

// TrendingQuestionsHandler godoc
// @Summary Trending questions
// @Description Most liked questions of the last seven days, at most ten.
// @Tags user-content
// @Produce json
// @Success 200 {object} httptransport.TrendingQuestionsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /question/trending [get]
func (h Handler) TrendingQuestionsHandler(ctx context.Context) (httptransport.TrendingQuestionsResponse, error) {
	result, err := h.Trending.Execute(ctx, queries.ListTrendingQuestionsQuery{})
	if err != nil {
		return httptransport.TrendingQuestionsResponse{}, err
	}
	resp := httptransport.TrendingQuestionsResponse{Items: make([]httptransport.QuestionDTO, 0, len(result.Items))}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, mapQuestion(item, ""))
	}
	return resp, nil
}

// SearchQuestionsHandler godoc
// @Summary Search questions
// @Description Case-insensitive search over title, content and tags.
// @Tags user-content
// @Produce json
// @Param q query string false "Search text"
// @Param sortBy query string false "timestamp, likes, dislikes, ldr or answers"
// @Param sortDirection query string false "ASC or DESC"
// @Param offset query int false "Offset"
// @Param limit query int false "Page size, 1 to 50"
// @Success 200 {object} httptransport.SearchQuestionsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /question/search [get]
func (h Handler) SearchQuestionsHandler(ctx context.Context, query string, params services.RawListParams) (httptransport.SearchQuestionsResponse, error) {
	result, err := h.Search.Execute(ctx, queries.SearchQuestionsQuery{Query: query, Params: params})
	if err != nil {
		return httptransport.SearchQuestionsResponse{}, err
	}
	resp := httptransport.SearchQuestionsResponse{
		Items:  make([]httptransport.QuestionDTO, 0, len(result.Items)),
		Total:  result.Total,
		Offset: result.Filter.Offset,
		Limit:  result.Filter.Limit,
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, mapQuestion(item, ""))
	}
	return resp, nil
}

// GetQuestionHandler godoc
// @Summary Get a question
// @Description Returns the question with the caller's rating.
// @Tags user-content
// @Produce json
// @Param id path string true "Question id (uuid)"
// @Success 200 {object} httptransport.QuestionDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /question/{id} [get]
func (h Handler) GetQuestionHandler(ctx context.Context, caller Caller, questionID string) (httptransport.QuestionDTO, error) {
	result, err := h.GetQuestion.Execute(ctx, queries.GetQuestionQuery{
		QuestionID: questionID,
		UserID:     caller.ID,
	})
	if err != nil {
		return httptransport.QuestionDTO{}, err
	}
	return mapQuestion(result.Question, result.Rating), nil
}

// GetQuestionTitleHandler godoc
// @Summary Get a question title
// @Tags user-content
// @Produce json
// @Param id path string true "Question id (uuid)"
// @Success 200 {object} httptransport.QuestionTitleResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /question/{id}/title [get]
func (h Handler) GetQuestionTitleHandler(ctx context.Context, questionID string) (httptransport.QuestionTitleResponse, error) {
	title, err := h.GetTitle.Execute(ctx, questionID)
	if err != nil {
		return httptransport.QuestionTitleResponse{}, err
	}
	return httptransport.QuestionTitleResponse{Title: title}, nil
}

// ListAnswersHandler godoc
// @Summary List answers of a question
// @Tags user-content
// @Produce json
// @Param id path string true "Question id (uuid)"
// @Param sortBy query string false "ldr, likes, dislikes or timestamp"
// @Param sortDirection query string false "asc or desc"
// @Param offset query int false "Offset"
// @Param limit query int false "Page size, 1 to 50"
// @Success 200 {object} httptransport.ListAnswersResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /question/{id}/answers [get]
func (h Handler) ListAnswersHandler(ctx context.Context, caller Caller, questionID string, params services.RawListParams) (httptransport.ListAnswersResponse, error) {
	result, err := h.ListAnswers.Execute(ctx, queries.ListAnswersQuery{
		QuestionID: questionID,
		UserID:     caller.ID,
		Params:     params,
	})
	if err != nil {
		return httptransport.ListAnswersResponse{}, err
	}
	resp := httptransport.ListAnswersResponse{
		Items:  make([]httptransport.AnswerDTO, 0, len(result.Items)),
		Total:  result.Total,
		Offset: result.Filter.Offset,
		Limit:  result.Filter.Limit,
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, mapAnswer(item, result.Ratings[item.ID]))
	}
	return resp, nil
}

// CreateQuestionHandler godoc
// @Summary Ask a question
// @Tags user-content
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body httptransport.CreateQuestionRequest true "Question"
// @Success 201 {object} httptransport.CreateContentResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /question/create [post]
func (h Handler) CreateQuestionHandler(ctx context.Context, caller Caller, req httptransport.CreateQuestionRequest) (httptransport.CreateContentResponse, error) {
	result, err := h.CreateQuestion.Execute(ctx, commands.CreateQuestionCommand{
		AuthorID:     caller.ID,
		AuthorName:   caller.DisplayName,
		Title:        req.Title,
		Content:      req.Content,
		Tags:         req.Tags,
		IsDiscussion: req.IsDiscussion,
		EnableAI:     req.EnableAI,
	})
	if err != nil {
		return httptransport.CreateContentResponse{}, err
	}
	return httptransport.CreateContentResponse{ID: result.Question.ID}, nil
}

// CreateAnswerHandler godoc
// @Summary Answer a question
// @Tags user-content
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Question id (uuid)"
// @Param request body httptransport.CreateAnswerRequest true "Answer"
// @Success 201 {object} httptransport.CreateContentResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /question/{id}/answer [post]
func (h Handler) CreateAnswerHandler(ctx context.Context, caller Caller, questionID string, req httptransport.CreateAnswerRequest) (httptransport.CreateContentResponse, error) {
	result, err := h.CreateAnswer.Execute(ctx, commands.CreateAnswerCommand{
		QuestionID: questionID,
		AuthorID:   caller.ID,
		AuthorName: caller.DisplayName,
		Content:    req.Content,
	})
	if err != nil {
		return httptransport.CreateContentResponse{}, err
	}
	return httptransport.CreateContentResponse{ID: result.Answer.ID}, nil
}

// RateContentHandler godoc
// @Summary Rate a question or answer
// @Description Rating is like, dislike or none; none withdraws the rating.
// @Tags user-content
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path string true "Content id (uuid)"
// @Param request body httptransport.RateContentRequest true "Rating"
// @Success 200 {object} httptransport.RateContentResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /question/{id}/rate [post]
// @Router /answer/{id}/rate [post]
func (h Handler) RateContentHandler(
	ctx context.Context,
	caller Caller,
	contentType entities.ContentType,
	contentID string,
	req httptransport.RateContentRequest,
) (httptransport.RateContentResponse, error) {
	result, err := h.RateContent.Execute(ctx, commands.RateContentCommand{
		ContentID:   contentID,
		ContentType: contentType,
		UserID:      caller.ID,
		Rating:      req.Rating,
	})
	if err != nil {
		return httptransport.RateContentResponse{}, err
	}
	return httptransport.RateContentResponse{
		Likes:    result.Likes,
		Dislikes: result.Dislikes,
		Rating:   string(result.Rating),
	}, nil
}

func mapQuestion(item entities.UserContent, rating entities.Rating) httptransport.QuestionDTO {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	return httptransport.QuestionDTO{
		ID:           item.ID,
		Title:        item.Title,
		Content:      item.Content,
		Tags:         tags,
		IsDiscussion: item.IsDiscussion,
		EnableAI:     item.EnableAI,
		AuthorID:     item.AuthorID,
		AuthorName:   item.AuthorName,
		AuthorType:   string(item.AuthorType),
		Likes:        item.Likes,
		Dislikes:     item.Dislikes,
		LDR:          item.LikeDislikeRatio(),
		AnswerCount:  item.AnswerCount,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
		Rating:       string(rating),
	}
}

func mapAnswer(item entities.UserContent, rating entities.Rating) httptransport.AnswerDTO {
	if rating == "" {
		rating = entities.RatingNone
	}
	return httptransport.AnswerDTO{
		ID:         item.ID,
		QuestionID: item.QuestionID,
		Content:    item.Content,
		AuthorID:   item.AuthorID,
		AuthorName: item.AuthorName,
		AuthorType: string(item.AuthorType),
		Likes:      item.Likes,
		Dislikes:   item.Dislikes,
		LDR:        item.LikeDislikeRatio(),
		CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
		Rating:     string(rating),
	}
}

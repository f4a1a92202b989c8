package httpserver

import (
	"errors"
	"net/http"

	usercontenthttpadapter "simpleq/contexts/community-experience/user-content-service/adapters/http"
	"simpleq/contexts/community-experience/user-content-service/domain/entities"
	usercontenterrors "simpleq/contexts/community-experience/user-content-service/domain/errors"
	"simpleq/contexts/community-experience/user-content-service/domain/services"
	usercontenthttp "simpleq/contexts/community-experience/user-content-service/transport/http"
	"simpleq/internal/platform/requestctx"
)

func (s *Server) handleTrendingQuestions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.userContent.Handler.TrendingQuestionsHandler(r.Context())
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.userContent.Handler.SearchQuestionsHandler(r.Context(), query.Get("q"), listParams(r))
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	resp, err := s.userContent.Handler.GetQuestionHandler(r.Context(), callerFromRequest(r), r.PathValue("id"))
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetQuestionTitle(w http.ResponseWriter, r *http.Request) {
	resp, err := s.userContent.Handler.GetQuestionTitleHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAnswers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.userContent.Handler.ListAnswersHandler(r.Context(), callerFromRequest(r), r.PathValue("id"), listParams(r))
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	caller := callerFromRequest(r)
	if caller.ID == "" {
		writeUserContentDomainError(w, usercontenterrors.ErrUnauthenticated)
		return
	}
	var req usercontenthttp.CreateQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeUserContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.userContent.Handler.CreateQuestionHandler(r.Context(), caller, req)
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCreateAnswer(w http.ResponseWriter, r *http.Request) {
	caller := callerFromRequest(r)
	if caller.ID == "" {
		writeUserContentDomainError(w, usercontenterrors.ErrUnauthenticated)
		return
	}
	var req usercontenthttp.CreateAnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeUserContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.userContent.Handler.CreateAnswerHandler(r.Context(), caller, r.PathValue("id"), req)
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRateQuestion(w http.ResponseWriter, r *http.Request) {
	s.rateContent(w, r, entities.ContentTypeQuestion)
}

func (s *Server) handleRateAnswer(w http.ResponseWriter, r *http.Request) {
	s.rateContent(w, r, entities.ContentTypeAnswer)
}

func (s *Server) rateContent(w http.ResponseWriter, r *http.Request, contentType entities.ContentType) {
	caller := callerFromRequest(r)
	if caller.ID == "" {
		writeUserContentDomainError(w, usercontenterrors.ErrUnauthenticated)
		return
	}
	var req usercontenthttp.RateContentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeUserContentError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.userContent.Handler.RateContentHandler(r.Context(), caller, contentType, r.PathValue("id"), req)
	if err != nil {
		writeUserContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func callerFromRequest(r *http.Request) usercontenthttpadapter.Caller {
	identity, ok := requestctx.IdentityFromContext(r.Context())
	if !ok {
		return usercontenthttpadapter.Caller{}
	}
	return usercontenthttpadapter.Caller{ID: identity.ID, DisplayName: identity.DisplayName}
}

func listParams(r *http.Request) services.RawListParams {
	query := r.URL.Query()
	return services.RawListParams{
		SortBy:        query.Get("sortBy"),
		SortDirection: query.Get("sortDirection"),
		Offset:        query.Get("offset"),
		Limit:         query.Get("limit"),
	}
}

func writeUserContentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usercontenterrors.ErrUnauthenticated):
		writeUserContentError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, usercontenterrors.ErrInvalidContentID):
		writeUserContentError(w, http.StatusBadRequest, "invalid_id", err.Error())
	case errors.Is(err, usercontenterrors.ErrInvalidTitle),
		errors.Is(err, usercontenterrors.ErrInvalidTags),
		errors.Is(err, usercontenterrors.ErrContentTooShort),
		errors.Is(err, usercontenterrors.ErrEmptyAnswer),
		errors.Is(err, usercontenterrors.ErrInvalidRating):
		writeUserContentError(w, http.StatusBadRequest, "invalid_content", err.Error())
	case errors.Is(err, usercontenterrors.ErrInvalidListFilter):
		writeUserContentError(w, http.StatusBadRequest, "invalid_list_filter", err.Error())
	case errors.Is(err, usercontenterrors.ErrQuestionNotFound),
		errors.Is(err, usercontenterrors.ErrContentNotFound):
		writeUserContentError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, usercontenterrors.ErrContentBlacklisted):
		writeUserContentError(w, http.StatusUnprocessableEntity, "content_blacklisted", err.Error())
	case errors.Is(err, usercontenterrors.ErrAIAnswerExists),
		errors.Is(err, usercontenterrors.ErrIdempotencyConflict):
		writeUserContentError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, usercontenterrors.ErrDependencyFailed):
		writeUserContentError(w, http.StatusServiceUnavailable, "dependency_unavailable", err.Error())
	default:
		writeUserContentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeUserContentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, usercontenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

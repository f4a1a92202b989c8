package httpserver

import (
	"errors"
	"net/http"

	blacklisterrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"
	blacklisthttp "simpleq/contexts/moderation-safety/blacklist-service/transport/http"
	"simpleq/internal/platform/requestctx"
)

func (s *Server) handleListBlacklist(w http.ResponseWriter, r *http.Request) {
	resp, err := s.blacklist.Handler.ListBlacklistHandler(r.Context())
	if err != nil {
		writeBlacklistDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBlacklistItem(w http.ResponseWriter, r *http.Request) {
	resp, err := s.blacklist.Handler.GetBlacklistItemHandler(r.Context(), r.PathValue("name"))
	if err != nil {
		writeBlacklistDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateBlacklistItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := requestctx.IdentityFromContext(r.Context())
	if !ok {
		writeBlacklistError(w, http.StatusUnauthorized, "unauthenticated", "an authenticated identity is required")
		return
	}

	var req blacklisthttp.CreateBlacklistItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBlacklistError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.blacklist.Handler.CreateBlacklistItemHandler(r.Context(), identity.Admin, req)
	if err != nil {
		writeBlacklistDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writeBlacklistDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blacklisterrors.ErrInvalidName):
		writeBlacklistError(w, http.StatusBadRequest, "invalid_name", err.Error())
	case errors.Is(err, blacklisterrors.ErrAlreadyExists):
		writeBlacklistError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, blacklisterrors.ErrForbidden):
		writeBlacklistError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeBlacklistError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBlacklistError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, blacklisthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

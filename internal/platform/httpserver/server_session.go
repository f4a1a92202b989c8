package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"simpleq/contexts/identity-access/session-service/domain/entities"
	sessionerrors "simpleq/contexts/identity-access/session-service/domain/errors"
	sessionhttp "simpleq/contexts/identity-access/session-service/transport/http"
	"simpleq/internal/platform/requestctx"
)

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	if identity, ok := requestctx.IdentityFromContext(r.Context()); ok && s.options.TrustUserHeader {
		writeJSON(w, http.StatusOK, sessionhttp.WhoAmIResponse{
			IdentityID:  identity.ID,
			DisplayName: identity.DisplayName,
			Active:      true,
		})
		return
	}
	resp, err := s.session.Handler.WhoAmIHandler(r.Context(), credentialsFromRequest(r))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	resp, err := s.session.Handler.LogoutHandler(r.Context(), r.Header.Get("Cookie"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func credentialsFromRequest(r *http.Request) entities.Credentials {
	credentials := entities.Credentials{
		Cookie:       r.Header.Get("Cookie"),
		SessionToken: strings.TrimSpace(r.Header.Get("X-Session-Token")),
	}
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		credentials.BearerToken = strings.TrimSpace(auth[7:])
	}
	return credentials
}

func writeSessionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrUnauthenticated),
		errors.Is(err, sessionerrors.ErrInvalidToken):
		writeSessionError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
	case errors.Is(err, sessionerrors.ErrIdentityUnavailable):
		writeSessionError(w, http.StatusServiceUnavailable, "identity_unavailable", "identity provider unavailable")
	default:
		writeSessionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSessionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

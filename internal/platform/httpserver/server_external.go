package httpserver

import (
	"errors"
	"net/http"

	gatewayerrors "simpleq/contexts/integrations/external-ai-gateway/domain/errors"
	gatewayhttp "simpleq/contexts/integrations/external-ai-gateway/transport/http"
	"simpleq/internal/platform/requestctx"
)

func (s *Server) handleRequestWolfram(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	if userID == "" {
		writeGatewayDomainError(w, gatewayerrors.ErrUnauthenticated)
		return
	}
	var req gatewayhttp.PromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeGatewayError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.gateway.Handler.WolframHandler(r.Context(), userID, req)
	if err != nil {
		writeGatewayDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRequestGPT(w http.ResponseWriter, r *http.Request) {
	userID := requestctx.UserIDFromContext(r.Context())
	if userID == "" {
		writeGatewayDomainError(w, gatewayerrors.ErrUnauthenticated)
		return
	}
	var req gatewayhttp.PromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeGatewayError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.gateway.Handler.GPTHandler(r.Context(), userID, req)
	if err != nil {
		writeGatewayDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeGatewayDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gatewayerrors.ErrUnauthenticated):
		writeGatewayError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, gatewayerrors.ErrProviderNotConfigured):
		writeGatewayError(w, http.StatusServiceUnavailable, "provider_not_configured", err.Error())
	case errors.Is(err, gatewayerrors.ErrUpstreamFailed):
		writeGatewayError(w, http.StatusBadGateway, "upstream_failed", "external provider request failed")
	default:
		writeGatewayError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGatewayError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, gatewayhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

package httpadapter

import (
	"context"
	"log/slog"

	"simpleq/contexts/identity-access/session-service/application"
	"simpleq/contexts/identity-access/session-service/domain/entities"
	domainerrors "simpleq/contexts/identity-access/session-service/domain/errors"
	httptransport "simpleq/contexts/identity-access/session-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// WhoAmIHandler godoc
// @Summary Current session
// @Tags session
// @Produce json
// @Security SessionAuth
// @Success 200 {object} httptransport.WhoAmIResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /session/whoami [get]
func (h Handler) WhoAmIHandler(ctx context.Context, credentials entities.Credentials) (httptransport.WhoAmIResponse, error) {
	session, found, err := h.Service.Resolve(ctx, credentials)
	if err != nil {
		return httptransport.WhoAmIResponse{}, err
	}
	if !found {
		return httptransport.WhoAmIResponse{}, domainerrors.ErrUnauthenticated
	}
	return httptransport.WhoAmIResponse{
		IdentityID:  session.IdentityID,
		DisplayName: session.DisplayName(),
		Active:      session.Active,
	}, nil
}

// LogoutHandler godoc
// @Summary Browser logout URL
// @Tags session
// @Produce json
// @Success 200 {object} httptransport.LogoutResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /session/logout [get]
func (h Handler) LogoutHandler(ctx context.Context, cookie string) (httptransport.LogoutResponse, error) {
	logoutURL, err := h.Service.LogoutURL(ctx, cookie)
	if err != nil {
		return httptransport.LogoutResponse{}, err
	}
	return httptransport.LogoutResponse{LogoutURL: logoutURL}, nil
}

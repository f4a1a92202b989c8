package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"simpleq/contexts/integrations/external-ai-gateway/application"
	domainerrors "simpleq/contexts/integrations/external-ai-gateway/domain/errors"
	httptransport "simpleq/contexts/integrations/external-ai-gateway/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// WolframHandler godoc
// @Summary Ask Wolfram
// @Description Returns the Wolfram answer body base64 encoded.
// @Tags external
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body httptransport.PromptRequest true "Prompt"
// @Success 200 {object} httptransport.WolframResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /external/wolfram [post]
func (h Handler) WolframHandler(ctx context.Context, userID string, req httptransport.PromptRequest) (httptransport.WolframResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return httptransport.WolframResponse{}, domainerrors.ErrUnauthenticated
	}
	result, err := h.Service.RequestWolfram(ctx, req.Prompt)
	if err != nil {
		return httptransport.WolframResponse{}, err
	}
	return httptransport.WolframResponse{Result: result}, nil
}

// GPTHandler godoc
// @Summary Ask the GPT provider
// @Tags external
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body httptransport.PromptRequest true "Prompt"
// @Success 200 {object} httptransport.GPTResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /external/gpt [post]
func (h Handler) GPTHandler(ctx context.Context, userID string, req httptransport.PromptRequest) (httptransport.GPTResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return httptransport.GPTResponse{}, domainerrors.ErrUnauthenticated
	}
	output, err := h.Service.RequestGPT(ctx, req.Prompt)
	if err != nil {
		return httptransport.GPTResponse{}, err
	}
	return httptransport.GPTResponse{Output: output}, nil
}

package application

import (
	"context"
	"encoding/base64"
	"log/slog"

	"simpleq/contexts/integrations/external-ai-gateway/ports"
)

// DevModeReply is returned instead of calling a provider in development.
const DevModeReply = "Das ist nur eine default Antwort um Tokens zu sparen."

type Service struct {
	Wolfram ports.WolframClient
	GPT     ports.GPTClient
	DevMode bool
	Logger  *slog.Logger
}

// RequestWolfram returns the Wolfram answer body as standard base64.
func (s Service) RequestWolfram(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}
	if s.DevMode {
		return DevModeReply, nil
	}
	body, err := s.Wolfram.Query(ctx, prompt)
	if err != nil {
		s.logFailure("wolfram", err)
		return "", err
	}
	return base64.StdEncoding.EncodeToString(body), nil
}

// RequestGPT returns the provider output, or "" when it has none.
func (s Service) RequestGPT(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}
	if s.DevMode {
		return DevModeReply, nil
	}
	output, err := s.GPT.Complete(ctx, prompt)
	if err != nil {
		s.logFailure("gpt", err)
		return "", err
	}
	if output == nil {
		return "", nil
	}
	return *output, nil
}

func (s Service) logFailure(provider string, err error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("external provider request failed",
		"event", "external_ai_request_failed",
		"module", "integrations/external-ai-gateway",
		"layer", "application",
		"provider", provider,
		"error", err.Error(),
	)
}

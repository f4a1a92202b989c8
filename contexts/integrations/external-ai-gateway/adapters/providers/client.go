package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domainerrors "simpleq/contexts/integrations/external-ai-gateway/domain/errors"
)

const tracerName = "simpleq/external-ai-gateway"

// maxResponseBytes bounds provider responses; Wolfram returns images.
const maxResponseBytes = 8 << 20

type Config struct {
	// WolframAppID is the full query URL prefix including the app id; the
	// escaped prompt is appended to it.
	WolframAppID string
	GPTAppURL    string
	GPTAppToken  string
	Timeout      time.Duration
}

// Client calls the external providers over HTTP.
type Client struct {
	cfg    Config
	client *http.Client
	tracer trace.Tracer
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		cfg:    cfg,
		client: httpClient,
		tracer: otel.Tracer(tracerName),
	}
}

func (c *Client) Query(ctx context.Context, prompt string) ([]byte, error) {
	if strings.TrimSpace(c.cfg.WolframAppID) == "" {
		return nil, domainerrors.ErrProviderNotConfigured
	}
	ctx, span := c.tracer.Start(ctx, "wolfram.query", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.WolframAppID+escapePrompt(prompt), nil)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("%w: create request: %w", domainerrors.ErrUpstreamFailed, err))
	}
	body, err := c.do(span, req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("response.bytes", len(body)))
	return body, nil
}

func (c *Client) Complete(ctx context.Context, prompt string) (*string, error) {
	if strings.TrimSpace(c.cfg.GPTAppURL) == "" {
		return nil, domainerrors.ErrProviderNotConfigured
	}
	ctx, span := c.tracer.Start(ctx, "gpt.complete", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(gptRequest{Prompt: prompt})
	if err != nil {
		return nil, recordError(span, fmt.Errorf("marshal gpt request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GPTAppURL, bytes.NewReader(payload))
	if err != nil {
		return nil, recordError(span, fmt.Errorf("%w: create request: %w", domainerrors.ErrUpstreamFailed, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.cfg.GPTAppToken)

	body, err := c.do(span, req)
	if err != nil {
		return nil, err
	}
	var result gptResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, recordError(span, fmt.Errorf("%w: decode response: %w", domainerrors.ErrUpstreamFailed, err))
	}
	return result.Output, nil
}

func (c *Client) do(span trace.Span, req *http.Request) ([]byte, error) {
	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("server.address", req.URL.Host),
	)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("%w: %w", domainerrors.ErrUpstreamFailed, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, recordError(span, fmt.Errorf("%w: read body: %w", domainerrors.ErrUpstreamFailed, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, recordError(span, fmt.Errorf("%w: status %d", domainerrors.ErrUpstreamFailed, resp.StatusCode))
	}
	return body, nil
}

// uriComponentReplacer restores the characters encodeURIComponent leaves
// unescaped and turns QueryEscape's "+" into "%20".
var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapePrompt percent-encodes the prompt the way encodeURIComponent does.
func escapePrompt(prompt string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(prompt))
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

type gptRequest struct {
	Prompt string `json:"prompt"`
}

type gptResponse struct {
	Output *string `json:"output"`
}

package ory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"simpleq/contexts/identity-access/session-service/domain/entities"
	domainerrors "simpleq/contexts/identity-access/session-service/domain/errors"
)

const maxResponseBytes = 1 << 20

// Client talks to the Ory frontend API.
type Client struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		tracer:  otel.Tracer("simpleq/session-service"),
	}
}

func (c *Client) WhoAmI(ctx context.Context, credentials entities.Credentials) (entities.Session, bool, error) {
	ctx, span := c.tracer.Start(ctx, "ory.whoami", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/sessions/whoami", nil)
	if err != nil {
		return entities.Session{}, false, fail(span, err)
	}
	req.Header.Set("Accept", "application/json")
	if credentials.Cookie != "" {
		req.Header.Set("Cookie", credentials.Cookie)
	}
	if credentials.SessionToken != "" {
		req.Header.Set("X-Session-Token", credentials.SessionToken)
	}

	var payload whoamiResponse
	status, err := c.getJSON(req, &payload)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return entities.Session{}, false, nil
	}
	if err != nil {
		return entities.Session{}, false, fail(span, err)
	}
	return entities.Session{
		IdentityID: payload.Identity.ID,
		Email:      payload.Identity.Traits.Email,
		Username:   payload.Identity.Traits.Username,
		Active:     payload.Active,
	}, true, nil
}

func (c *Client) LogoutURL(ctx context.Context, cookie string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "ory.logout_flow", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/self-service/logout/browser", nil)
	if err != nil {
		return "", fail(span, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cookie", cookie)

	var payload logoutResponse
	status, err := c.getJSON(req, &payload)
	if status == http.StatusUnauthorized {
		return "", domainerrors.ErrUnauthenticated
	}
	if err != nil {
		return "", fail(span, err)
	}
	return payload.LogoutURL, nil
}

func (c *Client) getJSON(req *http.Request, out any) (int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return resp.StatusCode, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return fmt.Errorf("%w: %w", domainerrors.ErrIdentityUnavailable, err)
}

type whoamiResponse struct {
	Active   bool `json:"active"`
	Identity struct {
		ID     string `json:"id"`
		Traits struct {
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"traits"`
	} `json:"identity"`
}

type logoutResponse struct {
	LogoutURL string `json:"logout_url"`
}

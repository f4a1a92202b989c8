package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	usercontentservice "simpleq/contexts/community-experience/user-content-service"
	sessionservice "simpleq/contexts/identity-access/session-service"
	"simpleq/contexts/identity-access/session-service/domain/entities"
	externalaigateway "simpleq/contexts/integrations/external-ai-gateway"
	"simpleq/contexts/integrations/external-ai-gateway/application"
	blacklistservice "simpleq/contexts/moderation-safety/blacklist-service"
)

func newTestServerWithSession(trustUserHeader bool) (*Server, sessionservice.Module) {
	logger := slog.Default()
	blacklist := blacklistservice.NewInMemoryModule(logger, "spam")
	session := sessionservice.NewInMemoryModule(logger)
	return New(
		blacklist,
		usercontentservice.NewInMemoryModule(blacklist.Service, logger),
		externalaigateway.NewModule(externalaigateway.Dependencies{DevMode: true, Logger: logger}),
		session,
		logger,
		Options{
			Addr:             ":0",
			AdminIdentityIDs: []string{"admin-1"},
			TrustUserHeader:  trustUserHeader,
		},
	), session
}

func newTestServerWithGateway(gateway externalaigateway.Dependencies) *Server {
	logger := slog.Default()
	gateway.Logger = logger
	blacklist := blacklistservice.NewInMemoryModule(logger)
	return New(
		blacklist,
		usercontentservice.NewInMemoryModule(blacklist.Service, logger),
		externalaigateway.NewModule(gateway),
		sessionservice.NewInMemoryModule(logger),
		logger,
		Options{Addr: ":0", TrustUserHeader: true},
	)
}

func newTestServer() *Server {
	server, _ := newTestServerWithSession(true)
	return server
}

func doRequest(t *testing.T, server *Server, method string, path string, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return out
}

func questionBody(title string) string {
	content := strings.Repeat("word ", 25)
	return `{"title":"` + title + `","content":"` + content + `","tags":["go","http"],"enable_ai":true}`
}

func TestHealthz(t *testing.T) {
	rr := doRequest(t, newTestServer(), http.MethodGet, "/healthz", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestBlacklistCreateRequiresAdmin(t *testing.T) {
	server := newTestServer()

	if rr := doRequest(t, server, http.MethodPost, "/blacklist", "", `{"name":"scam"}`); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := doRequest(t, server, http.MethodPost, "/blacklist", "user-1", `{"name":"scam"}`); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := doRequest(t, server, http.MethodPost, "/blacklist", "admin-1", `{"name":"scam"}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr := doRequest(t, server, http.MethodPost, "/blacklist", "admin-1", `{"name":"Scam"}`); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestBlacklistGetReturnsNullForUnknownName(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodGet, "/blacklist/unknown", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"item":null}` {
		t.Fatalf("unexpected body %s", got)
	}

	rr = doRequest(t, server, http.MethodGet, "/blacklist/spam", "", "")
	body := decodeBody[map[string]map[string]any](t, rr)
	if body["item"]["name"] != "spam" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestQuestionLifecycle(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/question/create", "user-1", questionBody("How do contexts cancel?"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	questionID := decodeBody[map[string]string](t, rr)["id"]

	rr = doRequest(t, server, http.MethodGet, "/question/"+questionID+"/title", "", "")
	if got := decodeBody[map[string]string](t, rr)["title"]; got != "How do contexts cancel?" {
		t.Fatalf("unexpected title %q", got)
	}

	rr = doRequest(t, server, http.MethodPost, "/question/"+questionID+"/answer", "user-2", `{"content":"Use context.WithCancel."}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	answerID := decodeBody[map[string]string](t, rr)["id"]

	rr = doRequest(t, server, http.MethodPost, "/answer/"+answerID+"/rate", "user-1", `{"rating":"like"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rated := decodeBody[map[string]any](t, rr)
	if rated["likes"] != float64(1) || rated["rating"] != "like" {
		t.Fatalf("unexpected rating response %s", rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/question/"+questionID+"/answers", "user-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	answers := decodeBody[struct {
		Items []struct {
			ID     string `json:"id"`
			Rating string `json:"rating"`
		} `json:"items"`
		Total int `json:"total"`
	}](t, rr)
	if answers.Total != 1 || answers.Items[0].ID != answerID || answers.Items[0].Rating != "like" {
		t.Fatalf("unexpected answers %s", rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/question/"+questionID, "", "")
	question := decodeBody[map[string]any](t, rr)
	if question["answer_count"] != float64(1) {
		t.Fatalf("expected answer count 1, got %s", rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/question/search?q=CONTEXTS", "", "")
	if got := decodeBody[map[string]any](t, rr)["total"]; got != float64(1) {
		t.Fatalf("expected one search hit, got %s", rr.Body.String())
	}
}

func TestQuestionCreateValidation(t *testing.T) {
	server := newTestServer()

	cases := []struct {
		name   string
		userID string
		body   string
		status int
	}{
		{name: "anonymous", body: questionBody("Valid title"), status: http.StatusUnauthorized},
		{name: "bad json", userID: "user-1", body: `{`, status: http.StatusBadRequest},
		{name: "short title", userID: "user-1", body: questionBody("short"), status: http.StatusBadRequest},
		{name: "blacklisted", userID: "user-1", body: questionBody("Buy SPAM today"), status: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, server, http.MethodPost, "/question/create", tc.userID, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestQuestionLookupErrors(t *testing.T) {
	server := newTestServer()

	if rr := doRequest(t, server, http.MethodGet, "/question/not-a-uuid", "", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if rr := doRequest(t, server, http.MethodGet, "/question/7d4f0c3e-8a61-4b7e-9a55-3f4c7f0b9d21", "", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr := doRequest(t, server, http.MethodGet, "/question/search?limit=500", "", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestExternalRequiresIdentity(t *testing.T) {
	server := newTestServer()

	if rr := doRequest(t, server, http.MethodPost, "/external/gpt", "", `{"prompt":"hi"}`); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	rr := doRequest(t, server, http.MethodPost, "/external/gpt", "user-1", `{"prompt":"hi"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeBody[map[string]string](t, rr)["output"]; got != application.DevModeReply {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestExternalChecksIdentityBeforeBody(t *testing.T) {
	server := newTestServer()

	for _, path := range []string{"/external/gpt", "/external/wolfram"} {
		if rr := doRequest(t, server, http.MethodPost, path, "", `{"prompt":`); rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
		if rr := doRequest(t, server, http.MethodPost, path, "user-1", `{"prompt":`); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rr.Code)
		}
	}
}

func TestExternalProviderErrors(t *testing.T) {
	server := newTestServerWithGateway(externalaigateway.Dependencies{})
	for _, path := range []string{"/external/gpt", "/external/wolfram"} {
		rr := doRequest(t, server, http.MethodPost, path, "user-1", `{"prompt":"hi"}`)
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %d body=%s", path, rr.Code, rr.Body.String())
		}
		if got := decodeBody[map[string]string](t, rr)["code"]; got != "provider_not_configured" {
			t.Fatalf("%s: unexpected code %q", path, got)
		}
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()
	server = newTestServerWithGateway(externalaigateway.Dependencies{
		WolframAppID: upstream.URL + "/v1/simple?appid=abc&i=",
		GPTAppURL:    upstream.URL + "/gpt",
		HTTPClient:   upstream.Client(),
	})
	for _, path := range []string{"/external/gpt", "/external/wolfram"} {
		rr := doRequest(t, server, http.MethodPost, path, "user-1", `{"prompt":"hi"}`)
		if rr.Code != http.StatusBadGateway {
			t.Fatalf("%s: expected 502, got %d body=%s", path, rr.Code, rr.Body.String())
		}
		if got := decodeBody[map[string]string](t, rr)["code"]; got != "upstream_failed" {
			t.Fatalf("%s: unexpected code %q", path, got)
		}
	}
}

func TestRateThroughWrongPathIsNotFound(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/question/create", "user-1", questionBody("Where do ratings go?"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	questionID := decodeBody[map[string]string](t, rr)["id"]
	rr = doRequest(t, server, http.MethodPost, "/question/"+questionID+"/answer", "user-2", `{"content":"They go to the content row."}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	answerID := decodeBody[map[string]string](t, rr)["id"]

	if rr := doRequest(t, server, http.MethodPost, "/question/"+answerID+"/rate", "user-1", `{"rating":"like"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("rating an answer as a question: expected 404, got %d", rr.Code)
	}
	if rr := doRequest(t, server, http.MethodPost, "/answer/"+questionID+"/rate", "user-2", `{"rating":"like"}`); rr.Code != http.StatusNotFound {
		t.Fatalf("rating a question as an answer: expected 404, got %d", rr.Code)
	}

	rr = doRequest(t, server, http.MethodGet, "/question/"+questionID, "", "")
	if got := decodeBody[map[string]any](t, rr)["likes"]; got != float64(0) {
		t.Fatalf("expected no likes after rejected ratings, got %v", got)
	}
}

func TestSessionWhoAmI(t *testing.T) {
	server, session := newTestServerWithSession(false)
	session.Provider.Register("tok-1", entities.Session{IdentityID: "id-9", Username: "ada", Active: true})

	req := httptest.NewRequest(http.MethodGet, "/session/whoami", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/whoami", nil)
	req.Header.Set("X-Session-Token", "tok-1")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody[map[string]any](t, rr)
	if body["identity_id"] != "id-9" || body["display_name"] != "ada" {
		t.Fatalf("unexpected whoami body %s", rr.Body.String())
	}

	// X-User-Id is ignored unless trusted.
	rr = doRequest(t, server, http.MethodPost, "/external/gpt", "id-9", `{"prompt":"hi"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

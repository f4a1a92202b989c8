package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	usercontentservice "simpleq/contexts/community-experience/user-content-service"
	sessionservice "simpleq/contexts/identity-access/session-service"
	externalaigateway "simpleq/contexts/integrations/external-ai-gateway"
	blacklistservice "simpleq/contexts/moderation-safety/blacklist-service"
	_ "simpleq/internal/platform/httpserver/docs"
	"simpleq/internal/platform/requestctx"
)

// Options carries the process-level knobs the router needs.
type Options struct {
	Addr             string
	AdminIdentityIDs []string
	// TrustUserHeader accepts X-User-Id as the caller identity. Local
	// development and tests only.
	TrustUserHeader bool
	ShutdownTimeout time.Duration
}

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	tracer      trace.Tracer
	options     Options
	blacklist   blacklistservice.Module
	userContent usercontentservice.Module
	gateway     externalaigateway.Module
	session     sessionservice.Module
}

func New(
	blacklist blacklistservice.Module,
	userContent usercontentservice.Module,
	gateway externalaigateway.Module,
	session sessionservice.Module,
	logger *slog.Logger,
	options Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if options.Addr == "" {
		options.Addr = ":8080"
	}
	if options.ShutdownTimeout <= 0 {
		options.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		tracer:      otel.Tracer("simpleq/httpserver"),
		options:     options,
		blacklist:   blacklist,
		userContent: userContent,
		gateway:     gateway,
		session:     session,
	}
	s.registerRoutes()
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.options.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.options.Addr,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.options.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.route("GET /blacklist", s.handleListBlacklist)
	s.route("GET /blacklist/{name}", s.handleGetBlacklistItem)
	s.route("POST /blacklist", s.handleCreateBlacklistItem)

	s.route("GET /question/trending", s.handleTrendingQuestions)
	s.route("GET /question/search", s.handleSearchQuestions)
	s.route("POST /question/create", s.handleCreateQuestion)
	s.route("GET /question/{id}", s.handleGetQuestion)
	s.route("GET /question/{id}/title", s.handleGetQuestionTitle)
	s.route("GET /question/{id}/answers", s.handleListAnswers)
	s.route("POST /question/{id}/answer", s.handleCreateAnswer)
	s.route("POST /question/{id}/rate", s.handleRateQuestion)
	s.route("POST /answer/{id}/rate", s.handleRateAnswer)

	s.route("POST /external/wolfram", s.handleRequestWolfram)
	s.route("POST /external/gpt", s.handleRequestGPT)

	s.route("GET /session/whoami", s.handleWhoAmI)
	s.route("GET /session/logout", s.handleLogout)
}

// route registers handler behind tracing and identity resolution.
func (s *Server) route(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.tracer.Start(r.Context(), pattern,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", pattern),
			),
		)
		defer span.End()

		if identity, ok := s.resolveIdentity(ctx, r); ok {
			ctx = requestctx.WithIdentity(ctx, identity)
			span.SetAttributes(attribute.String("enduser.id", identity.ID))
		}
		handler(w, r.WithContext(ctx))
	})
}

func (s *Server) resolveIdentity(ctx context.Context, r *http.Request) (requestctx.Identity, bool) {
	if s.options.TrustUserHeader {
		if userID := strings.TrimSpace(r.Header.Get("X-User-Id")); userID != "" {
			name := strings.TrimSpace(r.Header.Get("X-User-Name"))
			if name == "" {
				name = userID
			}
			return requestctx.Identity{ID: userID, DisplayName: name, Admin: s.isAdmin(userID)}, true
		}
	}

	session, found, err := s.session.Service.Resolve(ctx, credentialsFromRequest(r))
	if err != nil {
		s.logger.Warn("session resolution failed, continuing anonymous",
			"event", "session_resolution_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		return requestctx.Identity{}, false
	}
	if !found {
		return requestctx.Identity{}, false
	}
	return requestctx.Identity{
		ID:          session.IdentityID,
		DisplayName: session.DisplayName(),
		Admin:       s.isAdmin(session.IdentityID),
	}, true
}

func (s *Server) isAdmin(identityID string) bool {
	return slices.Contains(s.options.AdminIdentityIDs, identityID)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return decoder.Decode(out)
}

package sessionservice

import (
	"log/slog"
	"net/http"
	"time"

	httpadapter "simpleq/contexts/identity-access/session-service/adapters/http"
	"simpleq/contexts/identity-access/session-service/adapters/memory"
	"simpleq/contexts/identity-access/session-service/adapters/ory"
	"simpleq/contexts/identity-access/session-service/adapters/token"
	"simpleq/contexts/identity-access/session-service/application"
	"simpleq/contexts/identity-access/session-service/ports"
)

// Module exposes the session resolver. Provider is set for in-memory
// modules only.
type Module struct {
	Handler  httpadapter.Handler
	Service  application.Service
	Provider *memory.Provider
}

type Dependencies struct {
	Provider ports.SessionProvider
	Tokens   ports.TokenVerifier
	Cache    ports.SessionCache
	Clock    ports.Clock
	CacheTTL time.Duration
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Provider: deps.Provider,
		Tokens:   deps.Tokens,
		Cache:    deps.Cache,
		Clock:    deps.Clock,
		CacheTTL: deps.CacheTTL,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule resolves only sessions registered on Provider.
func NewInMemoryModule(logger *slog.Logger) Module {
	provider := memory.NewProvider()
	module := NewModule(Dependencies{
		Provider: provider,
		Cache:    memory.NewCache(),
		Clock:    memory.SystemClock{},
		CacheTTL: time.Minute,
		Logger:   logger,
	})
	module.Provider = provider
	return module
}

// Config selects the Ory endpoint and token secret for NewOryModule.
type Config struct {
	OryURL     string
	JWTSecret  string
	CacheTTL   time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewOryModule(cfg Config, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Provider: ory.NewClient(cfg.OryURL, cfg.Timeout, cfg.HTTPClient),
		Tokens:   token.NewVerifier(cfg.JWTSecret),
		Cache:    memory.NewCache(),
		Clock:    memory.SystemClock{},
		CacheTTL: cfg.CacheTTL,
		Logger:   logger,
	})
}

package blacklistservice

import (
	"log/slog"

	httpadapter "simpleq/contexts/moderation-safety/blacklist-service/adapters/http"
	"simpleq/contexts/moderation-safety/blacklist-service/adapters/memory"
	"simpleq/contexts/moderation-safety/blacklist-service/application"
	"simpleq/contexts/moderation-safety/blacklist-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(logger *slog.Logger, seed ...string) Module {
	store := memory.NewStore(seed...)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}

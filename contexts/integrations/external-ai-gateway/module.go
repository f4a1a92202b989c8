package externalaigateway

import (
	"log/slog"
	"net/http"
	"time"

	httpadapter "simpleq/contexts/integrations/external-ai-gateway/adapters/http"
	"simpleq/contexts/integrations/external-ai-gateway/adapters/providers"
	"simpleq/contexts/integrations/external-ai-gateway/application"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	WolframAppID string
	GPTAppURL    string
	GPTAppToken  string
	Timeout      time.Duration
	DevMode      bool
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	client := providers.NewClient(providers.Config{
		WolframAppID: deps.WolframAppID,
		GPTAppURL:    deps.GPTAppURL,
		GPTAppToken:  deps.GPTAppToken,
		Timeout:      deps.Timeout,
	}, deps.HTTPClient)
	service := application.Service{
		Wolfram: client,
		GPT:     client,
		DevMode: deps.DevMode,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
	}
}

package usercontentservice

import (
	"log/slog"

	httpadapter "simpleq/contexts/community-experience/user-content-service/adapters/http"
	"simpleq/contexts/community-experience/user-content-service/adapters/memory"
	"simpleq/contexts/community-experience/user-content-service/application/commands"
	"simpleq/contexts/community-experience/user-content-service/application/queries"
	"simpleq/contexts/community-experience/user-content-service/ports"
)

// Module is the composition surface for questions and answers.
// Runtime wiring consumes Handler; the worker consumes CreateAIAnswer.
// Store is set for in-memory modules only.
type Module struct {
	Handler        httpadapter.Handler
	CreateAIAnswer commands.CreateAIAnswerUseCase
	Store          *memory.Store
}

type Dependencies struct {
	Contents    ports.ContentRepository
	Ratings     ports.RatingRepository
	Screener    ports.ContentScreener
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Trending: queries.ListTrendingQuestionsUseCase{
			Contents: deps.Contents,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
		Search: queries.SearchQuestionsUseCase{
			Contents: deps.Contents,
			Logger:   deps.Logger,
		},
		GetQuestion: queries.GetQuestionUseCase{
			Contents: deps.Contents,
			Ratings:  deps.Ratings,
			Logger:   deps.Logger,
		},
		GetTitle: queries.GetQuestionTitleUseCase{
			Contents: deps.Contents,
			Logger:   deps.Logger,
		},
		ListAnswers: queries.ListAnswersUseCase{
			Contents: deps.Contents,
			Ratings:  deps.Ratings,
			Logger:   deps.Logger,
		},
		CreateQuestion: commands.CreateQuestionUseCase{
			Contents:    deps.Contents,
			Screener:    deps.Screener,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		CreateAnswer: commands.CreateAnswerUseCase{
			Contents:    deps.Contents,
			Screener:    deps.Screener,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		RateContent: commands.RateContentUseCase{
			Contents: deps.Contents,
			Ratings:  deps.Ratings,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		CreateAIAnswer: commands.CreateAIAnswerUseCase{
			Contents:    deps.Contents,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires the use cases against the in-memory store.
func NewInMemoryModule(screener ports.ContentScreener, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Contents:    store,
		Ratings:     store,
		Screener:    screener,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

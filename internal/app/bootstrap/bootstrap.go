package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	usercontentservice "simpleq/contexts/community-experience/user-content-service"
	usercontentpostgres "simpleq/contexts/community-experience/user-content-service/adapters/postgres"
	"simpleq/contexts/community-experience/user-content-service/application/workers"
	"simpleq/contexts/community-experience/user-content-service/ports"
	sessionservice "simpleq/contexts/identity-access/session-service"
	externalaigateway "simpleq/contexts/integrations/external-ai-gateway"
	blacklistservice "simpleq/contexts/moderation-safety/blacklist-service"
	blacklistpostgres "simpleq/contexts/moderation-safety/blacklist-service/adapters/postgres"
	"simpleq/internal/platform/config"
	"simpleq/internal/platform/db"
	"simpleq/internal/platform/httpserver"
	"simpleq/internal/platform/messaging"
	platformotel "simpleq/internal/platform/otel"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const (
	relayBatchSize = 100
	dedupTTL       = 7 * 24 * time.Hour
)

type APIApp struct {
	server        *httpserver.Server
	postgres      *db.Postgres
	background    *backgroundWorkers
	shutdownTrace func(context.Context) error
	logger        *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	workers       *backgroundWorkers
	shutdownTrace func(context.Context) error
	logger        *slog.Logger
}

// backgroundWorkers relays the user content outbox onto the bus and answers
// AI-enabled questions from it.
type backgroundWorkers struct {
	bus          *messaging.Bus
	outboxRelay  workers.OutboxRelay
	aiAnswers    workers.AIAnswerConsumer
	pollInterval time.Duration
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger().With("service", cfg.ServiceName, "process", "api")

	shutdownTrace, err := platformotel.Setup(ctx, cfg.ServiceName+"-api", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		return nil, err
	}

	gateway := newGateway(cfg, logger)
	session := sessionservice.NewOryModule(sessionservice.Config{
		OryURL:    cfg.OryURL,
		JWTSecret: cfg.OryJWTSecret,
		CacheTTL:  cfg.SessionCacheTTL,
	}, logger)

	app := &APIApp{shutdownTrace: shutdownTrace, logger: logger}
	var (
		blacklist   blacklistservice.Module
		userContent usercontentservice.Module
	)

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("POSTGRES_DSN not set, using in-memory storage",
			"event", "bootstrap_in_memory_storage",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		blacklist = blacklistservice.NewInMemoryModule(logger)
		userContent = usercontentservice.NewInMemoryModule(blacklist.Service, logger)

		bus, err := messaging.NewBus(cfg.KafkaBrokers, logger)
		if err != nil {
			return nil, err
		}
		store := userContent.Store
		app.background = newBackgroundWorkers(cfg, bus, store, store, store, gateway, userContent, logger)
	} else {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(); err != nil {
				_ = pg.Close()
				return nil, err
			}
		}
		app.postgres = pg

		blacklist = blacklistservice.NewModule(blacklistservice.Dependencies{
			Repository: blacklistpostgres.NewRepository(pg.DB, logger),
			Clock:      blacklistpostgres.SystemClock{},
			Logger:     logger,
		})
		repo := usercontentpostgres.NewRepository(pg.DB, logger)
		userContent = usercontentservice.NewModule(usercontentservice.Dependencies{
			Contents:    repo,
			Ratings:     repo,
			Screener:    blacklist.Service,
			Clock:       usercontentpostgres.SystemClock{},
			IDGenerator: usercontentpostgres.UUIDGenerator{},
			Logger:      logger,
		})
	}

	app.server = httpserver.New(blacklist, userContent, gateway, session, logger, httpserver.Options{
		Addr:             normalizeAddr(cfg.HTTPPort),
		AdminIdentityIDs: cfg.AdminIdentityIDs,
		TrustUserHeader:  cfg.TrustUserHeader,
		ShutdownTimeout:  cfg.ShutdownGracePeriod,
	})
	return app, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	shutdownTrace, err := platformotel.Setup(ctx, cfg.ServiceName+"-worker", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		return nil, err
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	bus, err := messaging.NewBus(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	blacklist := blacklistservice.NewModule(blacklistservice.Dependencies{
		Repository: blacklistpostgres.NewRepository(pg.DB, logger),
		Clock:      blacklistpostgres.SystemClock{},
		Logger:     logger,
	})
	repo := usercontentpostgres.NewRepository(pg.DB, logger)
	userContent := usercontentservice.NewModule(usercontentservice.Dependencies{
		Contents:    repo,
		Ratings:     repo,
		Screener:    blacklist.Service,
		Clock:       usercontentpostgres.SystemClock{},
		IDGenerator: usercontentpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	return &WorkerApp{
		postgres:      pg,
		workers:       newBackgroundWorkers(cfg, bus, repo, repo, usercontentpostgres.SystemClock{}, newGateway(cfg, logger), userContent, logger),
		shutdownTrace: shutdownTrace,
		logger:        logger,
	}, nil
}

func newGateway(cfg config.Config, logger *slog.Logger) externalaigateway.Module {
	return externalaigateway.NewModule(externalaigateway.Dependencies{
		WolframAppID: cfg.WolframAppID,
		GPTAppURL:    cfg.GPTAppURL,
		GPTAppToken:  cfg.GPTAppToken,
		Timeout:      cfg.ExternalAPITimeout,
		DevMode:      cfg.IsDev(),
		Logger:       logger,
	})
}

func newBackgroundWorkers(
	cfg config.Config,
	bus *messaging.Bus,
	outbox ports.OutboxRepository,
	dedup ports.EventDedupStore,
	clock ports.Clock,
	gateway externalaigateway.Module,
	userContent usercontentservice.Module,
	logger *slog.Logger,
) *backgroundWorkers {
	return &backgroundWorkers{
		bus: bus,
		outboxRelay: workers.OutboxRelay{
			Outbox:    outbox,
			Publisher: bus,
			Clock:     clock,
			BatchSize: relayBatchSize,
			Logger:    logger,
		},
		aiAnswers: workers.AIAnswerConsumer{
			Subscriber:   bus,
			Dedup:        dedup,
			Generator:    gateway.Service,
			CreateAnswer: userContent.CreateAIAnswer,
			Clock:        clock,
			Enabled:      cfg.EnableAIAnswers,
			DedupTTL:     dedupTTL,
			Logger:       logger,
		},
		pollInterval: cfg.WorkerPollInterval,
	}
}

func (b *backgroundWorkers) run(ctx context.Context) error {
	if err := b.aiAnswers.Start(ctx); err != nil {
		return err
	}
	return b.outboxRelay.Run(ctx, b.pollInterval)
}

func (b *backgroundWorkers) close() error {
	return b.bus.Close()
}

// Run serves HTTP until ctx is cancelled. In-memory deployments also run
// the background workers in this process.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.server.Run(groupCtx)
	})
	if a.background != nil {
		group.Go(func() error {
			return a.background.run(groupCtx)
		})
	}
	return group.Wait()
}

func (a *APIApp) Close() error {
	var errs []error
	if a.background != nil {
		errs = append(errs, a.background.close())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	errs = append(errs, shutdownTracing(a.shutdownTrace))
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.workers.pollInterval.String(),
	)
	return w.workers.run(ctx)
}

func (w *WorkerApp) Close() error {
	errs := []error{w.workers.close()}
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	errs = append(errs, shutdownTracing(w.shutdownTrace))
	return errors.Join(errs...)
}

func shutdownTracing(shutdown func(context.Context) error) error {
	if shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdown(ctx)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

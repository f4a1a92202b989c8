package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string   `env:"SERVICE_NAME" envDefault:"simpleq"`
	HTTPPort     string   `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv       string   `env:"APP_ENV" envDefault:"production"`
	PostgresDSN  string   `env:"POSTGRES_DSN"`
	AutoMigrate  bool     `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	WolframAppID        string        `env:"WOLFRAM_APP_ID"`
	GPTAppURL           string        `env:"GPT_APP_URL"`
	GPTAppToken         string        `env:"GPT_APP_TOKEN"`
	ExternalAPITimeout  time.Duration `env:"EXTERNAL_API_TIMEOUT" envDefault:"30s"`
	EnableAIAnswers     bool          `env:"ENABLE_AI_ANSWERS" envDefault:"true"`
	WorkerPollInterval  time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"2s"`
	OryURL              string        `env:"ORY_URL" envDefault:"http://localhost:4000"`
	OryJWTSecret        string        `env:"ORY_JWT_SECRET"`
	SessionCacheTTL     time.Duration `env:"SESSION_CACHE_TTL" envDefault:"1m"`
	TrustUserHeader     bool          `env:"AUTH_TRUST_USER_HEADER" envDefault:"false"`
	AdminIdentityIDs    []string      `env:"ADMIN_IDENTITY_IDS" envSeparator:","`
	OTelEndpoint        string        `env:"OTEL_ENDPOINT"`
	OTelEnabled         bool          `env:"OTEL_ENABLED" envDefault:"true"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.KafkaBrokers = trimList(cfg.KafkaBrokers)
	if len(cfg.KafkaBrokers) == 0 {
		cfg.KafkaBrokers = []string{"localhost:9092"}
	}
	cfg.AdminIdentityIDs = trimList(cfg.AdminIdentityIDs)
	return cfg, nil
}

// IsDev reports whether the process runs in development mode. External AI
// providers answer with a canned reply in this mode.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev" || c.AppEnv == "development"
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

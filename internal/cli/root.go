// Package cli provides the simpleq-admin command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	blacklistservice "simpleq/contexts/moderation-safety/blacklist-service"
	blacklistpostgres "simpleq/contexts/moderation-safety/blacklist-service/adapters/postgres"
	"simpleq/contexts/moderation-safety/blacklist-service/application"
	"simpleq/internal/platform/config"
	"simpleq/internal/platform/db"
)

// Env is what admin commands operate on.
type Env struct {
	Blacklist        application.Service
	Migrate          func() error
	MigrationVersion func() (int64, error)
	Close            func() error
}

// Opener builds an Env for one command invocation.
type Opener func(ctx context.Context) (*Env, error)

// PostgresOpener connects using POSTGRES_DSN.
func PostgresOpener(_ context.Context) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger().With("service", cfg.ServiceName, "process", "admin")
	module := blacklistservice.NewModule(blacklistservice.Dependencies{
		Repository: blacklistpostgres.NewRepository(pg.DB, logger),
		Clock:      blacklistpostgres.SystemClock{},
		Logger:     logger,
	})
	return &Env{
		Blacklist:        module.Service,
		Migrate:          pg.Migrate,
		MigrationVersion: pg.MigrationVersion,
		Close:            pg.Close,
	}, nil
}

// NewRootCmd creates the admin root command.
func NewRootCmd(open Opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simpleq-admin",
		Short:         "simpleQ operator tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newMigrateCommand(open))
	rootCmd.AddCommand(newBlacklistCommand(open))
	return rootCmd
}

func withEnv(cmd *cobra.Command, open Opener, fn func(*Env) error) error {
	env, err := open(cmd.Context())
	if err != nil {
		return err
	}
	if env.Close != nil {
		defer func() { _ = env.Close() }()
	}
	return fn(env)
}

func newMigrateCommand(open Opener) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				if err := env.Migrate(); err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				version, err := env.MigrationVersion()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
				return nil
			})
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				version, err := env.MigrationVersion()
				if err != nil {
					return err
				}
				files, err := db.MigrationFiles()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (%d migrations embedded)\n", version, len(files))
				return nil
			})
		},
	})
	return migrateCmd
}

func newBlacklistCommand(open Opener) *cobra.Command {
	blacklistCmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Manage blacklisted words",
	}
	blacklistCmd.AddCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Blacklist one or more words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				for _, name := range args {
					item, err := env.Blacklist.CreateBlacklistItem(cmd.Context(), name)
					if err != nil {
						return fmt.Errorf("add %q: %w", name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", item.Name)
				}
				return nil
			})
		},
	})
	blacklistCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List blacklisted words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, open, func(env *Env) error {
				items, err := env.Blacklist.GetAllBlacklistItems(cmd.Context())
				if err != nil {
					return err
				}
				for _, item := range items {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Name, item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
				}
				return nil
			})
		},
	})
	return blacklistCmd
}

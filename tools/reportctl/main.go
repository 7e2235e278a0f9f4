// Command reportctl is the operator CLI for migrations and ad-hoc report generation.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"creator-finance/internal/app"
	"creator-finance/internal/config"
	"creator-finance/internal/database"
)

// env is resolved once per invocation by the root command.
type env struct {
	cfg    config.Config
	logger *logrus.Logger
	db     *sql.DB
	app    *app.App
}

func (e *env) close() {
	if e.app != nil {
		_ = e.app.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
}

func (e *env) open(ctx context.Context) error {
	if e.cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL or PG_DSN is required")
	}
	db, err := database.Open(ctx, e.cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    e.cfg.DBMaxOpenConns,
		MaxIdleConns:    e.cfg.DBMaxIdleConns,
		ConnMaxLifetime: e.cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	e.db = db
	return nil
}

func (e *env) services(ctx context.Context) (*app.App, error) {
	if err := e.open(ctx); err != nil {
		return nil, err
	}
	a, err := app.New(e.db, e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	e.app = a
	return a, nil
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Creator finance reporting operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			logger.SetOutput(cmd.ErrOrStderr())
			e.cfg = cfg
			e.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
	}
	root.AddCommand(
		newMigrateCmd(e),
		newStatementCmd(e),
		newCampaignCmd(e),
		newPlatformCmd(e),
		newEarningsCmd(e),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reportctl:", err)
		os.Exit(1)
	}
}

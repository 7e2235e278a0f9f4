// Package app wires the reporting services onto Postgres for the API server and reportctl.
package app

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"creator-finance/internal/config"
	"creator-finance/internal/reporting/application"
	"creator-finance/internal/reporting/infrastructure/postgres"
	"creator-finance/internal/reporting/interfaces"
)

// App holds the wired reporting services.
type App struct {
	Statements *application.StatementService
	Views      *application.StatementViews
	Campaigns  *application.CampaignReportService
	Platform   *application.PlatformReportService
	Earnings   *application.EarningsService
	Renderer   *interfaces.Renderer

	amqp *interfaces.AMQPPublisher
}

// New builds the services over db. An AMQP publisher is attached when cfg.AMQPURL is set.
func New(db *sql.DB, cfg config.Config, logger logrus.FieldLogger) (*App, error) {
	if db == nil {
		return nil, errors.New("app: nil db")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	publishers := interfaces.MultiPublisher{interfaces.NewLoggingPublisher(logger)}
	var amqpPublisher *interfaces.AMQPPublisher
	if cfg.AMQPURL != "" {
		dialed, err := interfaces.DialAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		amqpPublisher = dialed
		publishers = append(publishers, amqpPublisher)
	}

	repoOpts := []postgres.Option{postgres.WithLocation(cfg.Location)}
	statementRepo := postgres.NewStatementRepository(db, repoOpts...)
	campaignRepo := postgres.NewCampaignReportRepository(db, repoOpts...)
	platformRepo := postgres.NewPlatformReportRepository(db, repoOpts...)
	ledger := postgres.NewLedgerReader(db, repoOpts...)
	directory := postgres.NewDirectory(db, repoOpts...)

	serviceOpts := []application.Option{
		application.WithPolicy(cfg.Policy),
		application.WithLocation(cfg.Location),
		application.WithPublisher(publishers),
		application.WithLogger(logger),
	}

	a := &App{Renderer: interfaces.NewRenderer(cfg.Render), amqp: amqpPublisher}
	var err error
	if a.Statements, err = application.NewStatementService(statementRepo, ledger, directory, serviceOpts...); err != nil {
		return nil, a.fail(err)
	}
	if a.Views, err = application.NewStatementViews(a.Statements); err != nil {
		return nil, a.fail(err)
	}
	if a.Campaigns, err = application.NewCampaignReportService(campaignRepo, ledger, directory, serviceOpts...); err != nil {
		return nil, a.fail(err)
	}
	if a.Platform, err = application.NewPlatformReportService(platformRepo, ledger, serviceOpts...); err != nil {
		return nil, a.fail(err)
	}
	if a.Earnings, err = application.NewEarningsService(ledger, directory, serviceOpts...); err != nil {
		return nil, a.fail(err)
	}
	return a, nil
}

// MonthCloseScheduler builds the month-close job from the schedule config.
func (a *App) MonthCloseScheduler(cfg config.Config, logger logrus.FieldLogger) (*application.MonthCloseScheduler, error) {
	subjects, err := cfg.MonthCloseSubjects()
	if err != nil {
		return nil, err
	}
	return application.NewMonthCloseScheduler(a.Statements, a.Platform, subjects, cfg.Schedule.Spec, logger)
}

// Close releases the event publisher connection.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.amqp.Close()
}

func (a *App) fail(err error) error {
	_ = a.Close()
	return fmt.Errorf("app: %w", err)
}

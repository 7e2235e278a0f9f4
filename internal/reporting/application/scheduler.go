package application

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

// DefaultMonthCloseSpec runs at 03:00 on the first day of every month (seconds field enabled).
const DefaultMonthCloseSpec = "0 0 3 1 * *"

// MonthCloseScheduler generates the reports of the month that just closed.
type MonthCloseScheduler struct {
	statements *StatementService
	platform   *PlatformReportService
	subjects   []reporting.Subject
	spec       string
	location   *time.Location
	logger     logrus.FieldLogger
	cron       *cron.Cron
}

// NewMonthCloseScheduler constructs a scheduler. subjects are generated in addition to the platform.
func NewMonthCloseScheduler(statements *StatementService, platform *PlatformReportService, subjects []reporting.Subject, spec string, logger logrus.FieldLogger) (*MonthCloseScheduler, error) {
	if statements == nil {
		return nil, errors.New("month close scheduler: nil statement service")
	}
	if spec == "" {
		spec = DefaultMonthCloseSpec
	}
	if logger == nil {
		logger = statements.opts.logger
	}
	return &MonthCloseScheduler{
		statements: statements,
		platform:   platform,
		subjects:   subjects,
		spec:       spec,
		location:   statements.opts.location,
		logger:     logger,
	}, nil
}

// Start schedules the job and blocks until ctx is done.
func (s *MonthCloseScheduler) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.cron = cron.New(cron.WithSeconds(), cron.WithLocation(s.location))
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx, time.Now().In(s.location))
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("month close scheduler started")

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	return nil
}

// RunOnce generates the reports of the month preceding now.
func (s *MonthCloseScheduler) RunOnce(ctx context.Context, now time.Time) {
	current, err := reporting.PeriodContaining(reporting.PeriodMonthly, now, s.location)
	if err != nil {
		metrics.IncMonthClose(metrics.ResultError)
		s.logger.WithError(err).Error("month close: resolve period")
		return
	}
	closed := current.Previous()
	log := s.logger.WithField("period", closed.Key())
	result := metrics.ResultSuccess

	subjects := append([]reporting.Subject{reporting.PlatformSubject()}, s.subjects...)
	for _, subject := range subjects {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.statements.GenerateForPeriod(ctx, subject, closed); err != nil {
			result = metrics.ResultError
			log.WithError(err).WithField("subject", subject.String()).Error("month close: statement")
		}
	}
	if s.platform != nil {
		if _, err := s.platform.GeneratePlatformRevenueReport(ctx, reporting.PeriodMonthly, closed.Start.Year(), int(closed.Start.Month())); err != nil {
			result = metrics.ResultError
			log.WithError(err).Error("month close: platform revenue report")
		}
	}
	metrics.IncMonthClose(result)
	log.WithField("result", result).Info("month close finished")
}

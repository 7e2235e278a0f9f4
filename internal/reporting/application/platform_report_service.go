package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"creator-finance/internal/observability/metrics"
	reporting "creator-finance/internal/reporting/domain"
)

// PlatformReportService generates memoized platform revenue reports.
type PlatformReportService struct {
	repo   reporting.PlatformReportRepository
	ledger PlatformLedgerReader
	opts   serviceOptions
	group  singleflight.Group
}

// NewPlatformReportService constructs a service.
func NewPlatformReportService(repo reporting.PlatformReportRepository, ledger PlatformLedgerReader, opts ...Option) (*PlatformReportService, error) {
	if repo == nil {
		return nil, errors.New("platform report service: nil repo")
	}
	if ledger == nil {
		return nil, errors.New("platform report service: nil ledger reader")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("platform report service: %w", err)
	}
	return &PlatformReportService{repo: repo, ledger: ledger, opts: o}, nil
}

// GeneratePlatformRevenueReport returns the platform revenue report for (reportType, year, period),
// generating it on first request. period is the day of year, ISO week, month or quarter
// depending on reportType and is ignored for yearly reports.
func (s *PlatformReportService) GeneratePlatformRevenueReport(ctx context.Context, reportType reporting.PeriodKind, year, period int) (*reporting.PlatformRevenueReport, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportGenerate(string(reporting.KindPlatformRevenue), result, time.Since(start))
	}()

	if reportType == reporting.PeriodLifetime {
		result = metrics.ResultError
		return nil, fmt.Errorf("%w: platform reports do not support lifetime", reporting.ErrInvalidPeriodKind)
	}
	resolved, err := reporting.ResolvePeriod(reportType, year, period, s.opts.location)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	key := reporting.PlatformReportKey{Period: resolved}
	value, err := shareWork(ctx, &s.group, key.String(), func(ctx context.Context) (any, error) {
		return s.findOrCreate(ctx, key)
	})
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return value.(*reporting.PlatformRevenueReport).Clone(), nil
}

func (s *PlatformReportService) findOrCreate(ctx context.Context, key reporting.PlatformReportKey) (*reporting.PlatformRevenueReport, error) {
	kind := string(reporting.KindPlatformRevenue)
	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.IncReportCache(kind, metrics.CacheHit)
		return existing, nil
	}
	metrics.IncReportCache(kind, metrics.CacheMiss)

	var current, previous reporting.PlatformTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.ledger.PlatformTotals(gctx, key.Period)
		if err != nil {
			return fmt.Errorf("current period: %w", err)
		}
		current = totals
		return nil
	})
	g.Go(func() error {
		totals, err := s.ledger.PlatformTotals(gctx, key.Period.Previous())
		if err != nil {
			return fmt.Errorf("previous period: %w", err)
		}
		previous = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	figures := reporting.CalculatePlatformRevenue(current, previous)
	report := &reporting.PlatformRevenueReport{
		ID:                      s.opts.newID(),
		ReportType:              key.Period.Kind,
		PeriodStart:             key.Period.Start,
		PeriodEnd:               key.Period.End,
		Currency:                s.opts.policy.Currency,
		Status:                  reporting.StatusFinal,
		GeneratedBy:             reporting.GeneratedBySystem,
		GeneratedAt:             s.opts.clock.Now().UTC(),
		GrossTransactionVolume:  figures.GrossTransactionVolume,
		PlatformCommission:      figures.PlatformCommission,
		ProcessingFees:          figures.ProcessingFees,
		TotalRevenue:            figures.TotalRevenue,
		Refunds:                 figures.Refunds,
		NetRevenue:              figures.NetRevenue,
		AverageTransactionValue: figures.AverageTransactionValue,
		TakeRate:                figures.TakeRate,
		RevenueGrowth:           figures.RevenueGrowth,
		PaidInvoiceCount:        current.PaidInvoiceCount,
		NewUsers:                current.NewUsers,
		NewBrands:               current.NewBrands,
		NewInfluencers:          current.NewInfluencers,
		NewCampaigns:            current.NewCampaigns,
		ActiveCampaigns:         current.ActiveCampaigns,
	}

	if err := s.repo.Insert(ctx, report); err != nil {
		if !errors.Is(err, reporting.ErrReportExists) {
			return nil, err
		}
		metrics.IncReportCache(kind, metrics.CacheRace)
		winner, err := s.repo.FindByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, fmt.Errorf("platform report service: conflicting report for %s not readable", key)
		}
		return winner, nil
	}

	s.opts.logger.WithFields(logrus.Fields{
		"report_id": report.ID,
		"period":    key.Period.Key(),
	}).Info("platform revenue report generated")
	publish(ctx, s.opts, ReportGenerated{
		ReportKind:  reporting.KindPlatformRevenue,
		ReportID:    report.ID,
		SubjectID:   reporting.PlatformSubjectID,
		SubjectKind: reporting.SubjectPlatform,
		PeriodKind:  report.ReportType,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
	})
	return report, nil
}

// Get returns a persisted platform report.
func (s *PlatformReportService) Get(ctx context.Context, id string) (*reporting.PlatformRevenueReport, error) {
	if id == "" {
		return nil, reporting.ErrReportNotFound
	}
	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, reporting.ErrReportNotFound
	}
	return report, nil
}
